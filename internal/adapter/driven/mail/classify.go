package mail

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"strings"
)

// FailureKind classifies a live delivery failure.
type FailureKind string

const (
	FailureAuth        FailureKind = "auth"
	FailureCertificate FailureKind = "certificate"
	FailureGeneric     FailureKind = "generic"
)

// User facing messages, one per failure kind.
const (
	MessageInvalidCredentials = "Invalid email credentials. Please check SMTP_USER and SMTP_PASS (Gmail requires an App Password)."
	MessageCertificate        = "Could not verify the mail server certificate. Check SMTP_HOST and SMTP_PORT, or set SMTP_SKIP_VERIFY=true for a trusted local relay."
	MessageGeneric            = "Failed to send email. Please try again."
)

// DeliveryError é uma falha de entrega já classificada, com a mensagem exibida ao usuário.
type DeliveryError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *DeliveryError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

var authMarkers = []string{
	"535",
	"534",
	"authentication failed",
	"username and password not accepted",
	"invalid login",
	"invalid credentials",
	"auth failed",
}

// Classify maps a transport error onto a DeliveryError. Errors that are already
// classified are returned unchanged.
func Classify(err error) *DeliveryError {
	if err == nil {
		return nil
	}

	var derr *DeliveryError
	if errors.As(err, &derr) {
		return derr
	}

	if isCertificateError(err) {
		return &DeliveryError{Kind: FailureCertificate, Message: MessageCertificate, Err: err}
	}

	text := strings.ToLower(err.Error())
	for _, marker := range authMarkers {
		if strings.Contains(text, marker) {
			return &DeliveryError{Kind: FailureAuth, Message: MessageInvalidCredentials, Err: err}
		}
	}

	return &DeliveryError{Kind: FailureGeneric, Message: MessageGeneric, Err: err}
}

func isCertificateError(err error) bool {
	var (
		unknownAuthority x509.UnknownAuthorityError
		hostname         x509.HostnameError
		invalid          x509.CertificateInvalidError
		verification     *tls.CertificateVerificationError
	)
	switch {
	case errors.As(err, &unknownAuthority),
		errors.As(err, &hostname),
		errors.As(err, &invalid),
		errors.As(err, &verification):
		return true
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "certificate") || strings.Contains(text, "x509")
}
