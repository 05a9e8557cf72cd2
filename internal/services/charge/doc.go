/*
Package charge implements the PIX charge use case.

The service sequences one charge transaction: resolve the debtor profile,
read the administrative payment configuration, build the PSP payload,
create the charge, upload the returned QR image and assemble the response.
Every step runs against an injected capability interface; the orchestrator
never talks to a database, the PSP or the object store directly.

Usage:

	svc := charge.NewService(accounts, admin, psp, store, logger)

	resp, err := svc.Execute(ctx, req, user)

Failure semantics:

Any step failure short-circuits the remaining steps and surfaces one of
the sentinel errors from errors.go; no partial response is ever returned
and no step is retried. A charge already created at the PSP is not rolled
back when the upload fails afterwards.
*/
package charge
