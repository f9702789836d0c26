package viewpoint

// MalformedDocumentError reports a source document with no usable viewpoint
// hierarchy. It is the only fatal reader error; field-level problems degrade
// to empty fields during projection instead.
type MalformedDocumentError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	msg := "malformed viewpoint document"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }
