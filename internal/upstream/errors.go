// Package upstream maps platform client failures onto the gateway's error
// taxonomy: the backend's message is surfaced verbatim when it sent one,
// otherwise the caller's per-action fallback string is used.
package upstream

import (
	"net/http"

	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/platform"
)

// DependencyError wraps an upstream failure. 404s become CodeNotFound so
// handlers render the right status; everything else is CodeDependency.
func DependencyError(err error, fallback string) error {
	if typed := platform.AsError(err); typed != nil {
		msg := typed.UpstreamMessage()
		if typed.HTTPStatus() == http.StatusNotFound {
			if msg == "" {
				msg = fallback
			}
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, msg)
		}
		if msg != "" {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fallback)
}
