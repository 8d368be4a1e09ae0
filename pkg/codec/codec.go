// Package codec converts ranking requests and responses to protobuf
// messages. Both travel as google.protobuf.Struct, over gRPC and as the body
// of queue messages.
package codec

import (
	"fmt"
	"math"

	"github.com/lioia/pagerank/pkg/graph"
	"github.com/lioia/pagerank/pkg/pagerank"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const ContentType = "application/x-protobuf"

// RankRequest asks for the rank tables of Graph. Zero fields of Config
// fall back to the defaults of the server handling it.
type RankRequest struct {
	ID     string              `json:"id"`
	Graph  map[string][]string `json:"graph"`
	Config pagerank.Config     `json:"config"`
}

// RankResponse carries both rank tables, or the reason they are missing
type RankResponse struct {
	ID       string             `json:"id"`
	Samples  int                `json:"samples,omitempty"`
	Sampled  pagerank.RankTable `json:"sampled,omitempty"`
	Iterated pagerank.RankTable `json:"iterated,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// NewRankRequest wraps g in a request
func NewRankRequest(id string, g graph.Graph, cfg pagerank.Config) RankRequest {
	return RankRequest{ID: id, Graph: g.Adjacency(), Config: cfg}
}

func EncodeRequest(req RankRequest) (*structpb.Struct, error) {
	g := make(map[string]any, len(req.Graph))
	for page, links := range req.Graph {
		list := make([]any, len(links))
		for i, link := range links {
			list[i] = link
		}
		g[page] = list
	}
	return structpb.NewStruct(map[string]any{
		"id":    req.ID,
		"graph": g,
		"config": map[string]any{
			"damping":        req.Config.Damping,
			"samples":        req.Config.Samples,
			"threshold":      req.Config.Threshold,
			"max_iterations": req.Config.MaxIterations,
			"seed":           req.Config.Seed,
		},
	})
}

func DecodeRequest(s *structpb.Struct) (RankRequest, error) {
	req := RankRequest{
		ID:    s.GetFields()["id"].GetStringValue(),
		Graph: make(map[string][]string),
	}
	g := s.GetFields()["graph"].GetStructValue()
	if g == nil {
		return req, fmt.Errorf("request %s: missing graph", req.ID)
	}
	for page, value := range g.GetFields() {
		list := value.GetListValue()
		if list == nil {
			return req, fmt.Errorf("request %s: links of %q are not a list", req.ID, page)
		}
		links := make([]string, 0, len(list.GetValues()))
		for _, link := range list.GetValues() {
			if _, ok := link.GetKind().(*structpb.Value_StringValue); !ok {
				return req, fmt.Errorf("request %s: link of %q is not a string", req.ID, page)
			}
			links = append(links, link.GetStringValue())
		}
		req.Graph[page] = links
	}
	cfg := s.GetFields()["config"].GetStructValue().GetFields()
	samples, err := wholeNumber(cfg, "samples", math.MaxInt32)
	if err != nil {
		return req, fmt.Errorf("request %s: %w", req.ID, err)
	}
	maxIterations, err := wholeNumber(cfg, "max_iterations", math.MaxInt32)
	if err != nil {
		return req, fmt.Errorf("request %s: %w", req.ID, err)
	}
	seed, err := wholeNumber(cfg, "seed", maxExactSeed)
	if err != nil {
		return req, fmt.Errorf("request %s: %w", req.ID, err)
	}
	req.Config = pagerank.Config{
		Damping:       cfg["damping"].GetNumberValue(),
		Samples:       int(samples),
		Threshold:     cfg["threshold"].GetNumberValue(),
		MaxIterations: int(maxIterations),
		Seed:          int64(seed),
	}
	return req, nil
}

// Largest seed a double carries exactly
const maxExactSeed = 1 << 53

// wholeNumber reads an integer config field. An absent field is 0.
func wholeNumber(fields map[string]*structpb.Value, name string, limit float64) (float64, error) {
	v, ok := fields[name]
	if !ok {
		return 0, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s is not a number", name)
	}
	x := n.NumberValue
	if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) || math.Abs(x) > limit {
		return 0, fmt.Errorf("%s %v is not a whole number in [-%v, %v]", name, x, limit, limit)
	}
	return x, nil
}

func EncodeResponse(resp RankResponse) (*structpb.Struct, error) {
	fields := map[string]any{"id": resp.ID}
	if resp.Error != "" {
		fields["error"] = resp.Error
	}
	if resp.Samples != 0 {
		fields["samples"] = resp.Samples
	}
	if resp.Sampled != nil {
		fields["sampled"] = tableToMap(resp.Sampled)
	}
	if resp.Iterated != nil {
		fields["iterated"] = tableToMap(resp.Iterated)
	}
	return structpb.NewStruct(fields)
}

func DecodeResponse(s *structpb.Struct) RankResponse {
	fields := s.GetFields()
	return RankResponse{
		ID:       fields["id"].GetStringValue(),
		Error:    fields["error"].GetStringValue(),
		Samples:  int(fields["samples"].GetNumberValue()),
		Sampled:  mapToTable(fields["sampled"].GetStructValue()),
		Iterated: mapToTable(fields["iterated"].GetStructValue()),
	}
}

// MarshalRequest encodes req as protobuf bytes
func MarshalRequest(req RankRequest) ([]byte, error) {
	s, err := EncodeRequest(req)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func UnmarshalRequest(data []byte) (RankRequest, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return RankRequest{}, err
	}
	return DecodeRequest(&s)
}

// MarshalResponse encodes resp as protobuf bytes
func MarshalResponse(resp RankResponse) ([]byte, error) {
	s, err := EncodeResponse(resp)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func UnmarshalResponse(data []byte) (RankResponse, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return RankResponse{}, err
	}
	return DecodeResponse(&s), nil
}

func tableToMap(t pagerank.RankTable) map[string]any {
	m := make(map[string]any, len(t))
	for page, rank := range t {
		m[page] = rank
	}
	return m
}

func mapToTable(s *structpb.Struct) pagerank.RankTable {
	if s == nil {
		return nil
	}
	t := make(pagerank.RankTable, len(s.GetFields()))
	for page, v := range s.GetFields() {
		t[page] = v.GetNumberValue()
	}
	return t
}
