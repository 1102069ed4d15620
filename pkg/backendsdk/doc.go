/*
Package backendsdk is the Go client for the estimate backend and the home of
its wire types, which the server handlers encode and decode directly.

# Client vs Session

  - Client covers the endpoints that need no credentials: register, login,
    refresh, password reset, support tickets, scans and health probes.
  - Session wraps a token pair and calls the /account endpoints. When the
    server answers 401 it rotates the refresh token once and retries.

	client := backendsdk.NewClient("http://localhost:3000")

	session, err := client.Register(ctx, "ivan", "secret")
	if err != nil {
		var apiErr *backendsdk.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			session, err = client.Login(ctx, "ivan", "secret")
		}
	}

	err = session.SetTwoFA(ctx, true)

# Split deployment

In split mode the auth, support and scan APIs listen on separate ports. Use
one Client per base URL; the types are identical.

# Errors

Every non-2xx response becomes an *APIError carrying the status code and
the server's {"error": "..."} message.
*/
package backendsdk
