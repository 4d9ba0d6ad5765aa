//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"coupon-service/internal/pkg/errs"

	cr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

var errMarker = errs.New("marker")

type kindError struct{ kind string }

func (e kindError) Error() string { return e.kind }

func TestMark(t *testing.T) {
	base := kindError{kind: "NOT_FOUND"}
	marked := errs.Mark(errs.Wrap(base, "lookup"), errMarker)

	assert.True(t, errors.Is(marked, errMarker))
	assert.True(t, cr.Is(marked, errMarker))
	assert.False(t, errors.Is(marked, errors.New("marker")))

	var ke kindError
	assert.True(t, errors.As(marked, &ke))
	assert.Equal(t, "NOT_FOUND", ke.kind)
	assert.Contains(t, marked.Error(), "lookup")
}

func TestMark_NilError(t *testing.T) {
	assert.Equal(t, errMarker, errs.Mark(nil, errMarker))
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 5))

	lines := errs.ExtractStackLines(errs.Mark(errs.New("boom"), errMarker), 3)
	assert.Len(t, lines, 3)
}
