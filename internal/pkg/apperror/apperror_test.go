package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "validation", err: Validation("bad"), want: KindValidation},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", NotFound("missing")), want: KindNotFound},
		{name: "processing", err: Processing("Error processing files", cause), want: KindProcessing},
		{name: "plain error", err: cause, want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
			assert.True(t, Is(tt.err, tt.want))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("timeout")
	err := Processing("Error processing files", cause)

	assert.Equal(t, "Error processing files: timeout", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "nope", Validation("nope").Error())
	assert.False(t, Is(nil, KindInternal))
}
