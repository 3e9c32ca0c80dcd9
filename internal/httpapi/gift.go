package httpapi

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"cadoz/internal/gift"
	"cadoz/internal/platform"
)

const maxActionBytes = 64 << 10

type giftResponse struct {
	State        gift.State         `json:"state"`
	View         gift.View          `json:"view"`
	Total        int64              `json:"total"`
	UniqueItems  int                `json:"uniqueItems"`
	ItemCount    int                `json:"itemCount"`
	Notification *gift.Notification `json:"notification,omitempty"`
}

type chooseRequest struct {
	ItemID string `json:"itemId"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) giftHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	s.renderGift(w, r, sess.Presenter, sess.Gift.State(), nil)
}

// giftActionHandler accepts a {"type", "payload"} action message.
func (s *Server) giftActionHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxActionBytes))
	if err != nil {
		s.renderHTTPError(w, r, platform.NewInvalidArgumentf("malformed request body: %v", err))
		return
	}
	action, err := s.decoder.Decode(data)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	state := sess.Gift.Dispatch(r.Context(), action)
	s.renderGift(w, r, sess.Presenter, state, nil)
}

func (s *Server) giftNextHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	s.renderGift(w, r, sess.Presenter, sess.Presenter.Next(r.Context()), nil)
}

func (s *Server) giftPrevHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	s.renderGift(w, r, sess.Presenter, sess.Presenter.Prev(r.Context()), nil)
}

func (s *Server) stepViewHandler(w http.ResponseWriter, r *http.Request) {
	step, err := gift.ParseStep(mux.Vars(r)["step"])
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	view, err := sess.Presenter.View(step)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) chooseHandler(w http.ResponseWriter, r *http.Request) {
	step, err := gift.ParseStep(mux.Vars(r)["step"])
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	var req chooseRequest
	if err := decodeBody(r, &req); err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	state, note, err := sess.Presenter.Choose(r.Context(), step, req.ItemID)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	s.renderGift(w, r, sess.Presenter, state, &note)
}

func (s *Server) giftEntryQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decodeBody(r, &req); err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	state, err := sess.Presenter.SetEntryQuantity(r.Context(), mux.Vars(r)["id"], req.Quantity)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	s.renderGift(w, r, sess.Presenter, state, nil)
}

func (s *Server) giftEntryRemoveHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	state, note := sess.Presenter.RemoveEntry(r.Context(), mux.Vars(r)["id"])
	s.renderGift(w, r, sess.Presenter, state, &note)
}

func (s *Server) renderGift(w http.ResponseWriter, r *http.Request, p *gift.Presenter, state gift.State, note *gift.Notification) {
	view, err := p.View(state.CurrentStep)
	if err != nil {
		s.renderHTTPError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, giftResponse{
		State:        state,
		View:         view,
		Total:        state.Total(),
		UniqueItems:  state.UniqueItems(),
		ItemCount:    state.ItemCount(),
		Notification: note,
	})
}
