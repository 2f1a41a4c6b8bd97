package client

// Status is the coarse textual outcome callbacks receive. The zero
// value means "in progress or finished cleanly".
type Status string

const (
	StatusTimeout     Status = "TIMEOUT"
	StatusError       Status = "ERROR"
	StatusNotModified Status = "NOTMODIFIED"
	StatusParserError Status = "PARSERERROR"
)

// Handler receives the completion protocol of one request: exactly one
// of OnSuccess / OnError fires, then OnComplete, always in that order.
// The request's connection is already released when any of these run.
type Handler interface {
	OnSuccess(data any, status Status, r *Request)
	OnError(r *Request, status Status, err error)
	OnComplete(r *Request, status Status)
}

// HandlerFuncs adapts plain functions to Handler. Nil funcs are no-ops.
type HandlerFuncs struct {
	Success  func(data any, status Status, r *Request)
	Error    func(r *Request, status Status, err error)
	Complete func(r *Request, status Status)
}

var _ Handler = HandlerFuncs{}

func (h HandlerFuncs) OnSuccess(data any, status Status, r *Request) {
	if h.Success != nil {
		h.Success(data, status, r)
	}
}

func (h HandlerFuncs) OnError(r *Request, status Status, err error) {
	if h.Error != nil {
		h.Error(r, status, err)
	}
}

func (h HandlerFuncs) OnComplete(r *Request, status Status) {
	if h.Complete != nil {
		h.Complete(r, status)
	}
}

// NopHandler discards every callback.
type NopHandler struct{}

var _ Handler = NopHandler{}

func (NopHandler) OnSuccess(any, Status, *Request) {}
func (NopHandler) OnError(*Request, Status, error) {}
func (NopHandler) OnComplete(*Request, Status)     {}
