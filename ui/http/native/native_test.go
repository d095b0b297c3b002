package native

import (
	"io"
	net_http "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chartdash/ui/http"
)

func TestDo(t *testing.T) {
	var gotAuthorization, gotBody string
	srv := httptest.NewServer(net_http.HandlerFunc(func(w net_http.ResponseWriter, r *net_http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(201)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()
	c := HTTPClient{}
	req := http.Request{
		Method: "POST",
		URL:    srv.URL,
		Headers: map[string]string{
			"Authorization": "Bearer xyz",
		},
		Body: strings.NewReader("password=secret"),
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	switch {
	case resp.Code != 201:
		t.Errorf("wanted response code 201, got %v", resp.Code)
	case string(respBody) != "ok":
		t.Errorf("wanted response body ok, got %v", string(respBody))
	case gotAuthorization != "Bearer xyz":
		t.Errorf("wanted authorization header to be sent, got %q", gotAuthorization)
	case gotBody != "password=secret":
		t.Errorf("wanted request body to be sent, got %q", gotBody)
	}
}

func TestDoBadURL(t *testing.T) {
	c := HTTPClient{}
	if _, err := c.Do(http.Request{Method: "bad method", URL: ":"}); err == nil {
		t.Error("wanted error for unusable request")
	}
}
