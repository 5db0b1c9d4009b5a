// Command topo2geo expands named objects of a TopoJSON topology back into
// GeoJSON features.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	jsoniter "github.com/json-iterator/go"
	geojson "github.com/paulmach/go.geojson"
	"github.com/spf13/pflag"

	"github.com/ONSdigital/go-ns/log"

	"github.com/davy9233/pytopojson/topology"
)

func main() {
	log.Namespace = "topo2geo"

	in := pflag.StringP("in", "i", "", "input topology file ('-' for stdin)")
	out := pflag.StringP("out", "o", "-", "output file ('-' for stdout)")
	pflag.Parse()

	if *in == "" {
		log.Error(fmt.Errorf("topo2geo: -i/--in is required"), nil)
		os.Exit(1)
	}

	names := pflag.Args()
	if len(names) == 0 {
		log.Error(fmt.Errorf("topo2geo: at least one object name is required"), nil)
		os.Exit(1)
	}

	topo, err := readTopology(*in)
	if err != nil {
		log.Error(err, log.Data{"_message": "failed to read topology", "in": *in})
		os.Exit(1)
	}

	fc := geojson.NewFeatureCollection()
	for _, name := range names {
		f, err := topology.Feature(topo, name)
		if err != nil {
			log.Error(err, log.Data{"_message": "failed to expand object", "name": name})
			os.Exit(1)
		}
		fc.AddFeature(f)
	}

	if err := writeFeatures(fc, *out); err != nil {
		log.Error(err, log.Data{"_message": "failed to write features", "out": *out})
		os.Exit(1)
	}
}

func readTopology(path string) (*topology.Topology, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = ioutil.ReadAll(os.Stdin)
	} else {
		data, err = ioutil.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var topo topology.Topology
	if err := jsoniter.Unmarshal(data, &topo); err != nil {
		return nil, err
	}
	return &topo, nil
}

func writeFeatures(fc *geojson.FeatureCollection, out string) error {
	data, err := json.Marshal(fc)
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
