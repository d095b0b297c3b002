package server

import "net/http"

// Challenge token and key used to get a TLS certificate using the ACME HTTP-01 challenge.
type Challenge struct {
	Token string
	Key   string
}

// acmePath is the path prefix of the endpoint the challenge is served at.
const acmePath = "/.well-known/acme-challenge/"

// acmeChallengeHandler writes the challenge to the response.
// The concatenation of the token, a period, and the key is written.
func acmeChallengeHandler(challenge Challenge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if len(challenge.Token) == 0 || path[len(acmePath):] != challenge.Token {
			http.NotFound(w, r)
			return
		}
		data := challenge.Token + "." + challenge.Key
		w.Write([]byte(data))
	}
}
