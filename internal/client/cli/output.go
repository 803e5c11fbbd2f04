package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/zkpauth/internal/client/client"
	"github.com/dmitrijs2005/zkpauth/internal/client/services"
	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/fatih/color"
)

var (
	colorOK    = color.New(color.FgGreen, color.Bold).SprintFunc()
	colorFail  = color.New(color.FgRed).SprintFunc()
	colorLabel = color.New(color.FgHiBlue).SprintFunc()
	colorFaint = color.New(color.Faint).SprintFunc()
)

func printOK(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, colorOK(fmt.Sprintf(format, args...)))
}

func printFail(w io.Writer, err error) {
	fmt.Fprintln(w, colorFail(describeError(err)))
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", colorLabel(label+":"), value)
}

// describeError turns service errors into short user-facing messages.
func describeError(err error) string {
	switch {
	case errors.Is(err, common.ErrProofMismatch):
		return "Login failed: wrong credentials"
	case errors.Is(err, common.ErrUnknownIdentity):
		return "Login failed: unknown user"
	case errors.Is(err, common.ErrMalformedInput):
		return "Invalid input: " + err.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later"
	case errors.Is(err, services.ErrNoSession):
		return "Not logged in"
	default:
		return "Error: " + err.Error()
	}
}
