// Package matrix is a client for the matrix API, which manages talent network
// tank configurations and talent network search.
//
// # Authentication
//
// Tank configuration calls use a bearer token obtained with the OAuth2
// client-credentials grant. The client authenticates to the token endpoint
// with a JWT-bearer client assertion: the claims (iss and sub set to the
// client ID, aud set to the production token endpoint, exp thirty minutes
// out) are signed with HS512 using the client secret. A new token is fetched
// for every operation; plug in a different TokenAcquirer to change that.
//
// Talent network search authenticates with a developer key passed as the
// DeveloperKey query parameter.
//
// # Errors
//
// Every failure is an *APIError with a Kind:
//
//   - KindTransport: the request never got a response
//   - KindClientReported: a 400 from the downstream system, safe to show users
//   - KindServerReported: any other non-2xx status, with a framed message
//   - KindConfiguration: missing credentials or invalid input, nothing was sent
//
// The remote service answers errors in several shapes: {"errors":[{"message":...}]},
// {"ErrorMessage":...} on 400, and HTML redirect pages. NormalizeError
// reduces all of them to a message.
//
// # Usage
//
//	client, err := matrix.NewClient(&matrix.Config{
//	    ClientID:     os.Getenv("CBOAUTH2_CLIENT_ID"),
//	    Secret:       os.Getenv("CBOAUTH2_SECRET"),
//	    DeveloperKey: os.Getenv("DEV_KEY"),
//	    Environment:  "production",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	body, err := client.Query(ctx, "TN7L0KS75V8CSV87PX9C")
//	if matrix.KindOf(err) == matrix.KindClientReported {
//	    // show err.Error() to the user
//	}
package matrix
