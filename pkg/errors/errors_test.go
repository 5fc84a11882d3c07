// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and filesystem error classification

package errors_test

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/envtrim/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "root_missing_error",
			code:    errors.ErrRootMissing,
			message: "tree root does not exist",
			wantStr: "[ROOT_MISSING] tree root does not exist",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "unknown platform",
			wantStr: "[INVALID_INPUT] unknown platform",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}
			if err.Details == nil {
				t.Error("New() details should be initialized")
			}
			if err.Error() != tt.wantStr {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrProfileNotFound, "profile %q not found", "tiny")
	want := `[PROFILE_NOT_FOUND] profile "tiny" not found`
	if err.Error() != want {
		t.Errorf("Newf() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	t.Run("wraps_error", func(t *testing.T) {
		base := stderrors.New("disk full")
		err := errors.Wrap(base, errors.ErrFileCopy, "copy libtiff.6.dylib")

		if !stderrors.Is(err, base) {
			t.Error("wrapped error should unwrap to base")
		}
		want := "[FILE_COPY] copy libtiff.6.dylib: disk full"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("nil_error_returns_nil", func(t *testing.T) {
		if errors.Wrap(nil, errors.ErrFileCopy, "noop") != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if errors.Wrapf(nil, errors.ErrFileCopy, "noop %d", 1) != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrRootMissing, "missing").
		WithDetail("root", "/opt/miniforge")

	if err.Details["root"] != "/opt/miniforge" {
		t.Errorf("WithDetail() root = %v", err.Details["root"])
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrRootMissing, "first")
	err2 := errors.New(errors.ErrRootMissing, "second")
	err3 := errors.New(errors.ErrPermission, "third")

	if !stderrors.Is(err1, err2) {
		t.Error("errors with the same code should match")
	}
	if stderrors.Is(err1, err3) {
		t.Error("errors with different codes should not match")
	}
}

func TestIsErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("engine: %w", errors.New(errors.ErrRootMissing, "gone"))

	if !errors.IsErrorCode(wrapped, errors.ErrRootMissing) {
		t.Error("IsErrorCode should see through fmt wrapping")
	}
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrRootMissing) {
		t.Error("plain errors carry no code")
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want UNKNOWN", got)
	}
}

func TestClassify(t *testing.T) {
	_, statErr := os.Lstat(filepath.Join(t.TempDir(), "nope"))

	tests := []struct {
		name     string
		err      error
		fallback errors.ErrorCode
		want     errors.ErrorCode
	}{
		{"nil", nil, errors.ErrFileDelete, ""},
		{"not_exist", statErr, errors.ErrFileDelete, errors.ErrNotFound},
		{"permission", &fs.PathError{Op: "remove", Path: "x", Err: fs.ErrPermission}, errors.ErrFileDelete, errors.ErrPermission},
		{"coded", errors.New(errors.ErrLinkUnsupported, "no links"), errors.ErrFileCopy, errors.ErrLinkUnsupported},
		{"other", stderrors.New("io error"), errors.ErrFileCopy, errors.ErrFileCopy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Classify(tt.err, tt.fallback); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}

	if !errors.IsMissing(statErr) {
		t.Error("IsMissing should accept a not-exist error")
	}
	if errors.IsMissing(nil) {
		t.Error("IsMissing(nil) should be false")
	}
}
