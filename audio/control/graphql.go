package control

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"

	"github.com/golang/glog"
	"github.com/graphql-go/graphql"

	"github.com/peragwin/xmatrix/audio/matrix"
)

// Snapshotter exposes the gains currently applied to audio.
type Snapshotter interface {
	Snapshot(dst *matrix.Gains)
}

// Schema is a GraphQL view of the routing matrix:
//
//	{ matrix { size published current } }
//	mutation { absolute(values: [...]) }
//	mutation { sparse(cells: [{row: 0, col: 1, gain: 0.5}]) }
type Schema struct {
	h      *Handler
	snap   Snapshotter
	schema graphql.Schema
}

// NewSchema builds the schema. snap may be nil, in which case current
// reports the published matrix.
func NewSchema(h *Handler, snap Snapshotter) (*Schema, error) {
	s := &Schema{h: h, snap: snap}

	matrixType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "MatrixType",
			Fields: graphql.Fields{
				"size": &graphql.Field{
					Type: graphql.Int,
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return h.Size(), nil
					},
				},
				"published": &graphql.Field{
					Type: graphql.NewList(graphql.Float),
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return h.Published().Float64s(), nil
					},
				},
				"current": &graphql.Field{
					Type: graphql.NewList(graphql.Float),
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return s.current().Float64s(), nil
					},
				},
			},
		},
	)

	cellInput := graphql.NewInputObject(
		graphql.InputObjectConfig{
			Name: "CellInput",
			Fields: graphql.InputObjectConfigFieldMap{
				"row":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
				"col":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
				"gain": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			},
		},
	)

	absoluteMut := &graphql.Field{
		Type: graphql.NewList(graphql.Float),
		Args: graphql.FieldConfigArgument{
			"values": &graphql.ArgumentConfig{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.Float))),
			},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			raw, ok := p.Args["values"].([]interface{})
			if !ok {
				return nil, errors.New("missing arg: values")
			}
			values, err := DecodeAbsolute(raw)
			if err != nil {
				return nil, err
			}
			if err := h.SetAbsolute(values); err != nil {
				return nil, err
			}
			return h.Published().Float64s(), nil
		},
	}

	sparseMut := &graphql.Field{
		Type: graphql.NewList(graphql.Float),
		Args: graphql.FieldConfigArgument{
			"cells": &graphql.ArgumentConfig{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(cellInput))),
			},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			raw, ok := p.Args["cells"].([]interface{})
			if !ok {
				return nil, errors.New("missing arg: cells")
			}
			triples := make([]interface{}, 0, 3*len(raw))
			for _, r := range raw {
				c, ok := r.(map[string]interface{})
				if !ok {
					return nil, errors.New("cells must be objects")
				}
				triples = append(triples, c["row"], c["col"], c["gain"])
			}
			cells, err := DecodeSparse(triples)
			if err != nil {
				return nil, err
			}
			if err := h.SetSparse(cells); err != nil {
				return nil, err
			}
			return h.Published().Float64s(), nil
		},
	}

	rootQuery := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "RootQuery",
			Fields: graphql.Fields{
				"matrix": &graphql.Field{
					Type: matrixType,
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return s, nil
					},
				},
			},
		},
	)
	rootMut := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "RootMut",
			Fields: graphql.Fields{
				"absolute": absoluteMut,
				"sparse":   sparseMut,
			},
		},
	)
	schema, err := graphql.NewSchema(
		graphql.SchemaConfig{
			Query:    rootQuery,
			Mutation: rootMut,
		},
	)
	if err != nil {
		return nil, err
	}
	s.schema = schema
	return s, nil
}

func (s *Schema) current() *matrix.Gains {
	if s.snap == nil {
		return s.h.Published()
	}
	g := matrix.MustNew(s.h.Size())
	s.snap.Snapshot(g)
	return g
}

// Query runs a GraphQL request against the schema.
func (s *Schema) Query(query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  query,
		VariableValues: vars,
	})
}

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// ServeHTTP accepts GET ?query= requests and Apollo style JSON POST bodies.
func (s *Schema) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	switch r.Method {
	case http.MethodGet:
		req.Query = r.URL.Query().Get("query")
	case http.MethodPost:
		body, err := ioutil.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if glog.V(2) {
		glog.Infof("graphql: %s", req.Query)
	}

	res := s.Query(req.Query, req.Variables)
	for _, err := range res.Errors {
		glog.Warningf("graphql: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		glog.Errorf("graphql: encoding response: %v", err)
	}
}
