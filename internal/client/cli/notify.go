package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/crudkeeper/internal/common"
)

// notifySuccess and notifyError are the console's transient notifications.
func notifySuccess(w io.Writer, msg string) {
	fmt.Fprintf(w, "[ok] %s\n", msg)
}

func notifyError(w io.Writer, action string, err error) {
	fmt.Fprintf(w, "[error] %s: %s\n", action, describe(err))
}

// describe picks the user-facing message for an error by its kind.
func describe(err error) string {
	switch common.KindOf(err) {
	case common.KindValidation:
		var ce *common.Error
		if errors.As(err, &ce) && len(ce.Fields) > 0 {
			return "invalid input: " + strings.Join(ce.FieldMessages(), "; ")
		}
		return "invalid input"
	case common.KindConnectivity:
		return "the store did not answer, check your network connection"
	case common.KindUnprocessableUpdate:
		return "the store rejected the record, its fields are likely the problem"
	case common.KindNotFound:
		return "the record no longer exists"
	case common.KindFetch:
		return "the request failed, try again"
	default:
		return err.Error()
	}
}
