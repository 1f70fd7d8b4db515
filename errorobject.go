package jsonapi

// ErrorObject describes a problem encountered while processing a request.
// Every member is optional; an empty ErrorObject encodes as {}.
type ErrorObject struct {
	ID     string       `json:"id,omitempty"`
	Links  Links        `json:"links,omitzero"`
	Status string       `json:"status,omitempty"`
	Code   string       `json:"code,omitempty"`
	Title  string       `json:"title,omitempty"`
	Detail string       `json:"detail,omitempty"`
	Source *ErrorSource `json:"source,omitempty"`
	Meta   Meta         `json:"meta,omitzero"`
}

// ErrorSource points at the part of a request that caused an error.
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
	Header    string `json:"header,omitempty"`
}

// NewErrorObject lifts err into an error object whose detail is err's
// message. All other members are left empty.
func NewErrorObject(err error) ErrorObject {
	if err == nil {
		return ErrorObject{}
	}
	return ErrorObject{Detail: err.Error()}
}

// Clone returns a deep copy of e.
func (e ErrorObject) Clone() ErrorObject {
	out := e
	out.Links = e.Links.Clone()
	out.Meta = e.Meta.Clone()
	if e.Source != nil {
		src := *e.Source
		out.Source = &src
	}
	return out
}
