// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/chott/chott/internal/actor"
	"github.com/chott/chott/internal/clock"
	"github.com/chott/chott/internal/environment"
	"github.com/chott/chott/internal/world"
	"github.com/chott/chott/pkg/errutil"
)

// Error codes returned by the API.
const (
	CodeLocationNotFound = "WEB_LOCATION_NOT_FOUND"
	CodeExitNotFound     = "WEB_EXIT_NOT_FOUND"
	CodeInvalidPattern   = "WEB_INVALID_PATTERN"
)

type connectionView struct {
	Name   string           `json:"name"`
	Target world.LocationID `json:"target"`
}

type actorView struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Location world.LocationID `json:"location"`
	Awake    bool             `json:"awake"`
	Fatigue  uint8            `json:"fatigue"`
	Health   int32            `json:"health"`
	Flags    actor.Flags      `json:"flags"`
}

type locationView struct {
	ID          world.LocationID        `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	Template    string                  `json:"template,omitempty"`
	Metadata    map[string]string       `json:"metadata,omitempty"`
	Connections []connectionView        `json:"connections"`
	Environment environment.Environment `json:"environment"`
	Actors      []actorView             `json:"actors"`
}

type locationSummary struct {
	ID     world.LocationID `json:"id"`
	Title  string           `json:"title"`
	Actors int              `json:"actors"`
}

type clockView struct {
	Time     string `json:"time"`
	Hour     uint8  `json:"hour"`
	Minute   uint8  `json:"minute"`
	Daytime  bool   `json:"daytime"`
	Twilight bool   `json:"twilight"`
	Tick     uint64 `json:"tick"`
}

type errorView struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func newActorView(a *actor.Actor) actorView {
	return actorView{
		ID:       a.ID,
		Name:     a.Name,
		Location: a.Location,
		Awake:    a.State.Awake,
		Fatigue:  a.State.Fatigue,
		Health:   a.State.Health,
		Flags:    a.Flags(),
	}
}

func (s *Server) handleLocations(w http.ResponseWriter, _ *http.Request) {
	snap := s.actors.Snapshot()
	ids := s.graph.IDs()
	views := make([]locationSummary, 0, len(ids))
	for _, id := range ids {
		loc, ok := s.graph.Get(id)
		if !ok {
			continue
		}
		views = append(views, locationSummary{ID: id, Title: loc.Title, Actors: len(snap.At(id))})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	view, err := s.locationView(r, world.LocationID(r.PathValue("id")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleExit(w http.ResponseWriter, r *http.Request) {
	id := world.LocationID(r.PathValue("id"))
	loc, ok := s.graph.Get(id)
	if !ok {
		s.writeError(w, r, locationNotFound(id))
		return
	}

	name := r.PathValue("name")
	conn, ok := loc.Connection(name)
	if !ok {
		s.writeError(w, r, oops.Code(CodeExitNotFound).
			With("location", id).
			With("exit", name).
			Errorf("no exit %q from %s", name, id))
		return
	}

	view, err := s.locationView(r, conn.Target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleActors(w http.ResponseWriter, r *http.Request) {
	var filter glob.Glob
	if pattern := r.URL.Query().Get("name"); pattern != "" {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			s.writeError(w, r, oops.Code(CodeInvalidPattern).
				With("pattern", pattern).
				Wrapf(err, "invalid name pattern"))
			return
		}
		filter = g
	}

	actors := s.actors.Snapshot().Actors()
	views := make([]actorView, 0, len(actors))
	for _, a := range actors {
		if filter != nil && !filter.Match(strings.ToLower(a.Name)) {
			continue
		}
		views = append(views, newActorView(a))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleClock(w http.ResponseWriter, _ *http.Request) {
	clk := clock.FromTime(s.now())
	writeJSON(w, http.StatusOK, clockView{
		Time:     clk.String(),
		Hour:     clk.Hour,
		Minute:   clk.Minute,
		Daytime:  clk.IsDaytime(),
		Twilight: clk.IsTwilight(),
		Tick:     s.actors.Snapshot().Tick(),
	})
}

// locationView renders a location with its environment and the actors awake
// there as of the last tick.
func (s *Server) locationView(r *http.Request, id world.LocationID) (locationView, error) {
	loc, ok := s.graph.Get(id)
	if !ok {
		return locationView{}, locationNotFound(id)
	}

	env, err := s.env.EnvironmentFor(r.Context(), id)
	if err != nil {
		return locationView{}, oops.With("location", id).Wrap(err)
	}

	view := locationView{
		ID:          loc.ID,
		Title:       loc.Title,
		Description: loc.Description,
		Template:    loc.Template,
		Metadata:    loc.Metadata,
		Connections: make([]connectionView, len(loc.Connections)),
		Environment: env,
		Actors:      []actorView{},
	}
	for i, c := range loc.Connections {
		view.Connections[i] = connectionView(c)
	}
	for _, a := range s.actors.Snapshot().At(id) {
		if a.State.Awake {
			view.Actors = append(view.Actors, newActorView(a))
		}
	}
	return view, nil
}

func locationNotFound(id world.LocationID) error {
	return oops.Code(CodeLocationNotFound).
		With("location", id).
		Errorf("location %q not found", id)
}

func statusFor(code string) int {
	switch code {
	case CodeLocationNotFound, CodeExitNotFound, environment.CodeUnknownLocation:
		return http.StatusNotFound
	case CodeInvalidPattern:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errutil.Code(err)
	status := statusFor(code)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		errutil.LogError(r.Context(), slog.Default(), "read API request failed", err)
		msg = http.StatusText(status)
		if code == "" {
			code = "INTERNAL"
		}
	}
	writeJSON(w, status, errorView{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errchkjson // client may disconnect
	_ = json.NewEncoder(w).Encode(v)
}
