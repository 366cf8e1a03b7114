package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestTypeString(t *testing.T) {
	if got := TypeValidation.String(); got != "ERROR_TYPE_VALIDATION" {
		t.Fatalf("unexpected validation string: %q", got)
	}
	if got := TypeBusiness.String(); got != "ERROR_TYPE_BUSINESS" {
		t.Fatalf("unexpected business string: %q", got)
	}
	if got := TypeServer.String(); got != "ERROR_TYPE_SERVER" {
		t.Fatalf("unexpected server string: %q", got)
	}
	if got := Type(99).String(); got != "ERROR_TYPE_UNKNOWN" {
		t.Fatalf("unexpected unknown type string: %q", got)
	}
}

func TestCodeString(t *testing.T) {
	cases := map[Code]string{
		CodeSchemaMismatch: "ERROR_CODE_SCHEMA_MISMATCH",
		CodeFileAccess:     "ERROR_CODE_FILE_ACCESS",
		CodeUpload:         "ERROR_CODE_UPLOAD",
		CodeLedgerWrite:    "ERROR_CODE_LEDGER_WRITE",
		CodeConflict:       "ERROR_CODE_CONFLICT",
		CodeInternal:       "ERROR_CODE_INTERNAL",
		Code(99):           "ERROR_CODE_INTERNAL",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Fatalf("Code(%d).String() = %q, want %q", int(code), got, want)
		}
	}
}

func TestServerError(t *testing.T) {
	root := errors.New("boom")
	err := NewServer(root)
	gerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected wrapped error")
	}
	if got := gerr.Type(); got != TypeServer {
		t.Fatalf("unexpected type: %v", got)
	}
	if got := gerr.Code(); got != CodeInternal {
		t.Fatalf("unexpected code: %v", got)
	}
	if got := gerr.Error(); got != "boom" {
		t.Fatalf("unexpected error string: %q", got)
	}
	if got := gerr.StatusCode(); got != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", got)
	}
}

func TestIngestionErrors(t *testing.T) {
	root := errors.New("permission denied")

	fileErr := NewFileAccess("data/items.csv", root)
	if got := fileErr.Error(); got != "cannot read data/items.csv: permission denied" {
		t.Fatalf("unexpected file access error: %q", got)
	}
	if !errors.Is(fileErr, root) {
		t.Fatalf("expected file access error to wrap cause")
	}
	if CodeOf(fileErr) != CodeFileAccess {
		t.Fatalf("unexpected code: %v", CodeOf(fileErr))
	}

	upErr := NewUpload("s3://bucket/raw/items.csv", root)
	if !Is(upErr, CodeUpload) {
		t.Fatalf("expected upload code")
	}
	if got := upErr.(*Error).StatusCode(); got != http.StatusBadGateway {
		t.Fatalf("unexpected upload status: %d", got)
	}

	ledgerErr := NewLedgerWrite("logs/ingestion_log.csv", root)
	if !Is(ledgerErr, CodeLedgerWrite) {
		t.Fatalf("expected ledger write code")
	}

	schemaErr := NewSchemaMismatch("schema mismatch in items.csv")
	if got := schemaErr.Error(); got != "schema mismatch in items.csv" {
		t.Fatalf("unexpected schema error: %q", got)
	}
	if schemaErr.(*Error).Type() != TypeValidation {
		t.Fatalf("expected validation type")
	}
}

func TestCodeOfWrappedAndPlain(t *testing.T) {
	wrapped := fmt.Errorf("dataset items: %w", NewSchemaMismatch("mismatch"))
	if got := CodeOf(wrapped); got != CodeSchemaMismatch {
		t.Fatalf("CodeOf(wrapped) = %v", got)
	}
	if got := CodeOf(errors.New("plain")); got != CodeInternal {
		t.Fatalf("CodeOf(plain) = %v", got)
	}
	if Is(nil, CodeUpload) {
		t.Fatalf("nil error must not match a code")
	}
}

func TestBusinessError(t *testing.T) {
	biz := NewBusiness("run in progress", CodeConflict).(*Error)
	if got := biz.Error(); got != "run in progress" {
		t.Fatalf("unexpected business error: %q", got)
	}
	if got := biz.StatusCode(); got != http.StatusConflict {
		t.Fatalf("unexpected business status: %d", got)
	}

	invalid := NewInvalidInput(errors.New("bad")).(*Error)
	if got := invalid.StatusCode(); got != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected invalid input status: %d", got)
	}
}

func TestErrorFallbackMessages(t *testing.T) {
	validation := new(nil, "", TypeValidation, CodeInternal).(*Error)
	if got := validation.Error(); got != "Validation violation" {
		t.Fatalf("unexpected validation fallback: %q", got)
	}

	business := new(nil, "", TypeBusiness, CodeInternal).(*Error)
	if got := business.Error(); got != "Logical business not meet with requirement" {
		t.Fatalf("unexpected business fallback: %q", got)
	}

	server := new(nil, "", TypeServer, CodeInternal).(*Error)
	if got := server.Error(); got != "Internal error" {
		t.Fatalf("unexpected server fallback: %q", got)
	}
}

func TestErrorStringIncludesDetails(t *testing.T) {
	err := NewUpload("s3://b/k", errors.New("timeout")).(*Error)
	str := err.String()
	for _, want := range []string{"ERROR_TYPE_SERVER", "ERROR_CODE_UPLOAD", "s3://b/k", "timeout"} {
		if !strings.Contains(str, want) {
			t.Fatalf("expected %q in string: %q", want, str)
		}
	}
}
