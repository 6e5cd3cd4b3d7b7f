/*
Package auth provides bearer token authentication for the adapter's admin
endpoint.

# Basic Usage

	validator := auth.NewTokenValidatorFromConfig(cfg.Server.Admin.Tokens)
	mw := auth.NewTokenMiddleware(validator, nil, logger)

	mux.Handle("/admin/lifecycle", mw.Handle(adminHandler))

Tokens are read from "Authorization: Bearer <token>" and then from the
X-Admin-Token header. Requests without an accepted token receive a JSON 401
with a WWW-Authenticate challenge.

# Extracting Token Info

	func handler(w http.ResponseWriter, r *http.Request) {
		info, ok := auth.GetTokenInfo(r.Context())
		if ok {
			slog.Info("admin request", "token", info.Name)
		}
	}

Token values are never logged; only names are.
*/
package auth
