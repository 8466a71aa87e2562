// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test coded errors, kinds and detail annotation

package errors_test

import (
	stderrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "plain",
			err:  errors.New(errors.ErrArchiveRead, "archive has no entries"),
			want: "[ARCHIVE_READ] archive has no entries",
		},
		{
			name: "formatted",
			err:  errors.Newf(errors.ErrMove, "destination %s already exists", "/mods/Alpha"),
			want: "[MOVE] destination /mods/Alpha already exists",
		},
		{
			name: "wrapped",
			err:  errors.Wrap(os.ErrPermission, errors.ErrRemoval, "failed to remove /mods/Alpha"),
			want: "[REMOVAL] failed to remove /mods/Alpha: permission denied",
		},
		{
			name: "wrapped_formatted",
			err:  errors.Wrapf(os.ErrNotExist, errors.ErrConfigMissing, "no %s in %s", "config.json", "Alpha"),
			want: "[CONFIG_MISSING] no config.json in Alpha: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestNew_InitializesDetails(t *testing.T) {
	err := errors.New(errors.ErrInvalidInput, "bad pattern")
	assert.Equal(t, errors.ErrInvalidInput, err.Code)
	assert.Equal(t, "bad pattern", err.Message)
	assert.NotNil(t, err.Details)
	assert.Nil(t, err.Unwrap())
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrMove, "move"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrMove, "move %s", "Alpha"))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrMove, "exists").
		WithDetail("path", "/mods/Alpha").
		WithDetails(map[string]interface{}{
			"source":  "/mods/staging/Alpha",
			"package": "Alpha",
		})

	assert.Equal(t, map[string]interface{}{
		"path":    "/mods/Alpha",
		"source":  "/mods/staging/Alpha",
		"package": "Alpha",
	}, err.Details)

	var bare errors.ModupError
	bare.WithDetail("k", "v")
	assert.Equal(t, "v", bare.Details["k"])
}

func TestIs_MatchesByCode(t *testing.T) {
	first := errors.New(errors.ErrRemoval, "busy")
	second := errors.New(errors.ErrRemoval, "permission denied")
	other := errors.New(errors.ErrMove, "exists")

	assert.True(t, stderrors.Is(first, second))
	assert.False(t, stderrors.Is(first, other))
	assert.True(t, stderrors.Is(fmt.Errorf("update Alpha: %w", first), second))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
		want bool
	}{
		{"matching", errors.New(errors.ErrArchiveRead, "corrupt"), errors.ErrArchiveRead, true},
		{"different", errors.New(errors.ErrArchiveRead, "corrupt"), errors.ErrMove, false},
		{"wrapped_by_fmt", fmt.Errorf("outer: %w", errors.New(errors.ErrMove, "exists")), errors.ErrMove, true},
		{"standard", stderrors.New("plain"), errors.ErrMove, false},
		{"nil", nil, errors.ErrMove, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrArchiveRead, errors.GetErrorCode(errors.New(errors.ErrArchiveRead, "corrupt")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}

func TestGetErrorDetails(t *testing.T) {
	err := errors.New(errors.ErrMove, "exists").WithDetail("path", "/mods/Alpha")
	assert.Equal(t, "/mods/Alpha", errors.GetErrorDetails(err)["path"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestErrorChain(t *testing.T) {
	root := os.ErrPermission
	access := errors.Wrap(root, errors.ErrFileAccess, "cannot read config.toml")
	load := errors.Wrap(access, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(load, errors.ErrConfigLoad))
	assert.True(t, stderrors.Is(load, root))

	var inner *errors.ModupError
	require.True(t, stderrors.As(load.Unwrap(), &inner))
	assert.Equal(t, errors.ErrFileAccess, inner.Code)
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"archive_read", errors.New(errors.ErrArchiveRead, "corrupt"), "ArchiveReadError"},
		{"config_missing", errors.New(errors.ErrConfigMissing, "absent"), "ConfigMissingError"},
		{"removal", errors.New(errors.ErrRemoval, "busy"), "RemovalError"},
		{"move", errors.New(errors.ErrMove, "exists"), "MoveError"},
		{"wrapped_pipeline_error", fmt.Errorf("outer: %w", errors.New(errors.ErrMove, "exists")), "MoveError"},
		{"other_code_falls_back", errors.New(errors.ErrInvalidInput, "bad"), "INVALID_INPUT"},
		{"standard_error", stderrors.New("plain"), "UNKNOWN"},
		{"nil_error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Kind(tt.err))
		})
	}
}

func TestAnnotate(t *testing.T) {
	t.Run("adds_missing_details", func(t *testing.T) {
		err := errors.New(errors.ErrMove, "exists").WithDetail("path", "/mods/Alpha")
		got := errors.Annotate(err, map[string]interface{}{
			"path":    "/elsewhere",
			"package": "Alpha",
		})

		details := errors.GetErrorDetails(got)
		assert.Equal(t, "/mods/Alpha", details["path"])
		assert.Equal(t, "Alpha", details["package"])
	})

	t.Run("reaches_wrapped_error", func(t *testing.T) {
		inner := errors.New(errors.ErrRemoval, "busy")
		outer := fmt.Errorf("update: %w", inner)
		errors.Annotate(outer, map[string]interface{}{"archive": "a.zip"})
		assert.Equal(t, "a.zip", inner.Details["archive"])
	})

	t.Run("plain_error_untouched", func(t *testing.T) {
		plain := stderrors.New("plain")
		assert.Same(t, plain, errors.Annotate(plain, map[string]interface{}{"k": "v"}))
	})
}
