package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/crudkeeper/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestDescribe_ByKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation with fields",
			err:  common.NewValidation("x", map[string]string{"power": "too short", "age": "out of range"}),
			want: "invalid input: age: out of range; power: too short",
		},
		{name: "validation bare", err: &common.Error{Kind: common.KindValidation}, want: "invalid input"},
		{name: "connectivity", err: &common.Error{Kind: common.KindConnectivity}, want: "the store did not answer, check your network connection"},
		{name: "unprocessable", err: fmt.Errorf("wrapped: %w", &common.Error{Kind: common.KindUnprocessableUpdate}), want: "the store rejected the record, its fields are likely the problem"},
		{name: "not found", err: &common.Error{Kind: common.KindNotFound}, want: "the record no longer exists"},
		{name: "fetch", err: &common.Error{Kind: common.KindFetch, Status: 502}, want: "the request failed, try again"},
		{name: "foreign", err: errors.New("unknown collection"), want: "unknown collection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.err))
		})
	}
}

func TestNotify(t *testing.T) {
	var buf bytes.Buffer
	notifySuccess(&buf, "unicorn abc created")
	notifyError(&buf, "delete", &common.Error{Kind: common.KindNotFound})

	assert.Equal(t, "[ok] unicorn abc created\n[error] delete: the record no longer exists\n", buf.String())
}
