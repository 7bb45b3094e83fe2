package validators

import (
	"bytes"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func TestReadValuesURLEncoded(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=alice&password=secret"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	values, err := ReadValues(req)
	if err != nil {
		t.Fatalf("read values: %v", err)
	}
	if values.Get("username") != "alice" || values.Get("password") != "secret" {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestReadValuesJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/add_product", strings.NewReader(`{"name":"Lamp","price":12.5,"category":null}`))
	req.Header.Set("Content-Type", "application/json")

	values, err := ReadValues(req)
	if err != nil {
		t.Fatalf("read values: %v", err)
	}
	if values.Get("name") != "Lamp" || values.Get("price") != "12.5" {
		t.Fatalf("unexpected values %v", values)
	}
	if _, ok := values["category"]; ok {
		t.Fatalf("null fields must be dropped")
	}
}

func TestReadValuesJSONRejectsNested(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":{"$ne":""}}`))
	req.Header.Set("Content-Type", "application/json")

	_, err := ReadValues(req)
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReadValuesMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("username", "alice")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	values, err := ReadValues(req)
	if err != nil {
		t.Fatalf("read values: %v", err)
	}
	if values.Get("username") != "alice" {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestPeekValuesRestoresBody(t *testing.T) {
	body := "username=alice&password=secret"
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	values, err := PeekValues(req)
	if err != nil {
		t.Fatalf("peek values: %v", err)
	}
	if values.Get("username") != "alice" {
		t.Fatalf("unexpected values %v", values)
	}

	rest, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(rest) != body {
		t.Fatalf("body not restored, got %q", string(rest))
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("42"); err != nil || id != 42 {
		t.Fatalf("expected 42, got %d (%v)", id, err)
	}
	if id, err := ParseID("9223372036854775807"); err != nil || id != math.MaxInt64 {
		t.Fatalf("expected max bigint id, got %d (%v)", id, err)
	}
	for _, raw := range []string{"", "abc", "-1", "0", "1.5", "9223372036854775808", "18446744073709551615"} {
		if _, err := ParseID(raw); !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			t.Fatalf("ParseID(%q): expected not found, got %v", raw, err)
		}
	}
}
