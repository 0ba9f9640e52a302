package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/socialsociety/SocialSociety/app/models"
)

func testClient(srvURL string) *PaystackClient {
	return &PaystackClient{
		SecretKey:  "sk_test_secret",
		APIBaseURL: srvURL,
		HTTPClient: http.DefaultClient,
	}
}

func TestInitialize_Success(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "ref_001"
			}
		}`))
	}))
	defer srv.Close()

	sel := models.NewSelection()
	sel.Platforms = []models.Platform{models.PlatformInstagram}

	auth, err := testClient(srv.URL).Initialize(context.Background(), InitializeInput{
		Email:       "ada@example.com",
		Amount:      8_000_000,
		Metadata:    EncodeSelection(sel),
		CallbackURL: "https://example.com/payment-success",
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if auth.URL != "https://checkout.paystack.com/abc123" || auth.Reference != "ref_001" {
		t.Fatalf("unexpected authorization: %+v", auth)
	}
	if gotAuth != "Bearer sk_test_secret" {
		t.Fatalf("Authorization header = %q", gotAuth)
	}
	if gotPath != "/transaction/initialize" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestInitialize_MissingSecretFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("provider must not be called without a secret")
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.SecretKey = ""
	_, err := c.Initialize(context.Background(), InitializeInput{Email: "a@b.co", Amount: 100})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestInitialize_RejectsMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("provider must not be called with missing fields")
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Initialize(context.Background(), InitializeInput{Email: "", Amount: 100}); err == nil {
		t.Fatal("expected error for missing email")
	}
	if _, err := c.Initialize(context.Background(), InitializeInput{Email: "a@b.co", Amount: 0}); err == nil {
		t.Fatal("expected error for non-positive amount")
	}
}

func TestInitialize_ProviderErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Initialize(context.Background(), InitializeInput{Email: "a@b.co", Amount: 100})
	if err == nil || err.Error() != "paystack initialize failed: Invalid key" {
		t.Fatalf("err = %v", err)
	}
}

func TestInitialize_NoAuthorizationURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": true, "data": {"reference": "ref_001"}}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Initialize(context.Background(), InitializeInput{Email: "a@b.co", Amount: 100}); err == nil {
		t.Fatal("expected error when no authorization_url is returned")
	}
}

func TestVerify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/ref_001" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"status": true,
			"data": {
				"status": "success",
				"gateway_response": "Successful",
				"amount": 8000000,
				"currency": "NGN",
				"reference": "ref_001",
				"customer": {"email": "ada@example.com"},
				"metadata": {"custom_fields": [
					{"display_name": "Platforms", "variable_name": "platforms", "value": "instagram,youtube"},
					{"display_name": "Phone Number", "variable_name": "phone_number", "value": "+2348012345678"}
				]}
			}
		}`))
	}))
	defer srv.Close()

	res, err := testClient(srv.URL).Verify(context.Background(), "ref_001")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("expected success, got status %q", res.Status)
	}
	if res.Amount != 8_000_000 || res.Currency != "NGN" || res.CustomerEmail != "ada@example.com" {
		t.Fatalf("unexpected result: %+v", res)
	}

	sel := DecodeSelection(res.Metadata)
	if len(sel.Platforms) != 2 || sel.Phone != "+2348012345678" {
		t.Fatalf("unexpected decoded selection: %+v", sel)
	}
}

func TestVerify_DeclinedIsResultNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": true,
			"data": {
				"status": "failed",
				"gateway_response": "Declined by bank",
				"reference": "ref_002"
			}
		}`))
	}))
	defer srv.Close()

	res, err := testClient(srv.URL).Verify(context.Background(), "ref_002")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.Succeeded() {
		t.Fatal("declined transaction reported as success")
	}
	if res.FailureMessage() != "Declined by bank" {
		t.Fatalf("FailureMessage() = %q, want gateway response", res.FailureMessage())
	}
}

func TestVerify_FailureMessageFallsBackToStatus(t *testing.T) {
	r := &VerifyResult{Status: "abandoned"}
	if r.FailureMessage() != "abandoned" {
		t.Fatalf("FailureMessage() = %q", r.FailureMessage())
	}
	r = &VerifyResult{}
	if r.FailureMessage() != "Payment not successful" {
		t.Fatalf("FailureMessage() = %q", r.FailureMessage())
	}
}

func TestVerify_TransportAndParseErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Verify(context.Background(), "ref_003"); err == nil {
		t.Fatal("expected error for non-2xx verify response")
	}

	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv2.Close()

	if _, err := testClient(srv2.URL).Verify(context.Background(), "ref_003"); err == nil {
		t.Fatal("expected error for unparseable verify response")
	}
}

func TestVerify_EmptyReference(t *testing.T) {
	if _, err := testClient("http://unused").Verify(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty reference")
	}
}
