// Command geo2topo converts one or more named GeoJSON inputs into a single
// TopoJSON topology, deduplicating the arcs shared between them.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	geojson "github.com/paulmach/go.geojson"
	"github.com/spf13/pflag"

	"github.com/ONSdigital/go-ns/log"

	"github.com/davy9233/pytopojson/config"
	"github.com/davy9233/pytopojson/topology"
)

func main() {
	log.Namespace = "geo2topo"

	cfg, err := config.Get()
	if err != nil {
		log.Error(err, nil)
		os.Exit(1)
	}

	quantization := pflag.IntP("quantization", "q", cfg.DefaultQuantization, "quantization grid size (0 disables prequantization)")
	out := pflag.StringP("out", "o", "-", "output file ('-' for stdout)")
	pflag.Parse()

	inputs, err := readInputs(pflag.Args())
	if err != nil {
		log.Error(err, nil)
		os.Exit(1)
	}

	topo, err := topology.Build(inputs, *quantization)
	if err != nil {
		log.Error(err, log.Data{"_message": "failed to build topology"})
		os.Exit(1)
	}

	if err := writeTopology(topo, *out); err != nil {
		log.Error(err, log.Data{"_message": "failed to write topology", "out": *out})
		os.Exit(1)
	}
}

// readInputs resolves each "name=file" argument (or bare "-" for an
// unnamed stdin object) into a topology.NamedInput, decoding its GeoJSON
// with jsoniter the way models.CreateRenderRequest decodes its hot path.
func readInputs(args []string) ([]topology.NamedInput, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("geo2topo: at least one name=file argument is required")
	}

	inputs := make([]topology.NamedInput, 0, len(args))
	for _, arg := range args {
		name, path := splitArg(arg)

		data, err := readPath(path)
		if err != nil {
			return nil, fmt.Errorf("geo2topo: reading %q: %w", path, err)
		}

		if name == "" {
			name = deriveName(path)
		}

		obj, err := decodeGeoJSON(data)
		if err != nil {
			return nil, fmt.Errorf("geo2topo: decoding %q: %w", path, err)
		}

		inputs = append(inputs, topology.NamedInput{Name: name, Object: obj})
	}
	return inputs, nil
}

// splitArg splits a "name=file" argument into its parts. A bare "-"
// argument (no "=") has no derivable name; deriveName fills one in.
func splitArg(arg string) (name, path string) {
	if arg == "-" {
		return "", "-"
	}
	if i := strings.IndexByte(arg, '='); i >= 0 {
		return arg[:i], arg[i+1:]
	}
	return "", arg
}

// deriveName produces an object name for an argument with no explicit
// "name=" prefix: the file's basename without extension, or - for stdin,
// which has no filename to derive from - a generated uuid.
func deriveName(path string) string {
	if path == "-" {
		return uuid.New().String()
	}
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}

func readPath(path string) ([]byte, error) {
	if path == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(path)
}

// decodeGeoJSON sniffs the "type" field to decode data as a
// FeatureCollection, Feature, or bare Geometry.
func decodeGeoJSON(data []byte) (interface{}, error) {
	var sniff struct {
		Type string `json:"type"`
	}
	if err := jsoniter.Unmarshal(data, &sniff); err != nil {
		return nil, err
	}

	switch sniff.Type {
	case "FeatureCollection":
		var fc geojson.FeatureCollection
		if err := jsoniter.Unmarshal(data, &fc); err != nil {
			return nil, err
		}
		return &fc, nil
	case "Feature":
		var f geojson.Feature
		if err := jsoniter.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return &f, nil
	default:
		var g geojson.Geometry
		if err := jsoniter.Unmarshal(data, &g); err != nil {
			return nil, err
		}
		return &g, nil
	}
}

func writeTopology(topo *topology.Topology, out string) error {
	data, err := json.Marshal(topo)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	_, err = w.Write(data)
	return err
}
