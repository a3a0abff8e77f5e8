package cascadetest

import "github.com/cascadefund/cascade"

// Handler is a mock implementation of the cascade.Handler interface.
//
// Each method call is counted. Set CheckErr or DeliverErr to force an error
// response.
type Handler struct {
	Calls

	CheckResult cascade.CheckResult
	CheckErr    error

	DeliverResult cascade.DeliverResult
	DeliverErr    error

	// Write, if set, is stored in the database by Deliver before
	// returning.
	Write *cascade.Model
}

var _ cascade.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*cascade.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*cascade.DeliverResult, error) {
	h.deliver++
	if h.Write != nil {
		if err := db.Set(h.Write.Key, h.Write.Value); err != nil {
			return nil, err
		}
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ cascade.Handler = PanicHandler{}

func (p PanicHandler) Check(cascade.Context, cascade.KVStore, cascade.Tx) (*cascade.CheckResult, error) {
	panic(p.Msg)
}

func (p PanicHandler) Deliver(cascade.Context, cascade.KVStore, cascade.Tx) (*cascade.DeliverResult, error) {
	panic(p.Msg)
}
