package retry

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	ai "github.com/keyurgolani/babynest-ai"
)

// statusCoder is an interface for errors that have an HTTP status code.
// Both Anthropic and OpenAI SDK errors implement this interface.
type statusCoder interface {
	StatusCode() int
}

// DefaultClassifier is the classifier used when Options.IsRetryable is nil.
// Explicit categorization via ai.CategorizedError wins outright; otherwise
// the result is an OR of the independent fallback classifiers:
//   - RetryableStoreCode: transient Postgres SQLSTATE codes
//   - RetryableNetwork: network-level errors (timeouts, resets, DNS)
//   - RetryableMessage: case-insensitive transient message substrings
//
// The store-code and message classifiers are deliberately separate so a
// future backend's transient-error vocabulary can evolve independently of
// the persistence layer's.
func DefaultClassifier(err error) bool {
	if err == nil {
		return false
	}

	var ce ai.CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ai.ErrorTransient
	}

	// Check for API errors with status codes (works with Anthropic/OpenAI SDKs)
	var sc statusCoder
	if errors.As(err, &sc) && retryableStatusCode(sc.StatusCode()) {
		return true
	}

	return RetryableStoreCode(err) || RetryableNetwork(err) || RetryableMessage(err)
}

// retryableStatusCode checks if an HTTP status code indicates a transient error.
func retryableStatusCode(code int) bool {
	// 429 = Rate Limited
	if code == 429 {
		return true
	}
	// 5xx = Server Errors
	if code >= 500 && code < 600 {
		return true
	}
	return false
}

// transientStoreCodes is the fixed set of Postgres SQLSTATE codes the
// persistence layer emits for failures that are expected to succeed on
// retry. This list is a contract with the storage collaborator and must
// track its error taxonomy.
var transientStoreCodes = map[string]bool{
	"08000": true, // connection_exception
	"08001": true, // sqlclient_unable_to_establish_sqlconnection
	"08003": true, // connection_does_not_exist
	"08006": true, // connection_failure
	"53300": true, // too_many_connections (pool exhaustion)
	"57014": true, // query_canceled (statement timeout)
	"57P01": true, // admin_shutdown (server closed connection)
	"40001": true, // serialization_failure (write conflict)
	"40P01": true, // deadlock_detected
}

// RetryableStoreCode reports whether err carries a transient persistence
// error code.
func RetryableStoreCode(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientStoreCodes[pgErr.Code]
	}
	return false
}

// RetryableNetwork checks for network-level transient errors.
func RetryableNetwork(err error) bool {
	// Check for timeout errors
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Check for URL errors (wrapping network errors)
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && RetryableNetwork(urlErr.Err) {
			return true
		}
	}

	// Check for DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.IsNotFound
	}

	// Check for syscall errors (connection reset, etc.)
	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNRESET, // Connection reset by peer
			syscall.ECONNREFUSED, // Connection refused
			syscall.ETIMEDOUT:    // Connection timed out
			return true
		}
	}

	return false
}

// transientMessagePatterns are matched case-insensitively against error
// messages as a last-resort heuristic for errors that carry no structured
// code.
var transientMessagePatterns = []string{
	"connection",
	"timeout",
	"deadlock",
	"econnrefused",
	"econnreset",
	"enotfound",
	"socket hang up",
	"too many connections",
}

// RetryableMessage reports whether the error message contains a known
// transient-failure substring.
func RetryableMessage(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range transientMessagePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
