// vbac-pack compresses a vertex skinning attribute buffer described by a
// YAML run-parameters file into a vbac container artifact.
package main

import (
	"encoding/binary"
	"flag"
	"log"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/vtxcompress/vbac"
	"github.com/vtxcompress/vbac/internal/container"
)

// runConfig is the YAML schema a run-parameters file follows.
type runConfig struct {
	Input           string `yaml:"input"`
	Output          string `yaml:"output"`
	Method          string `yaml:"method"`
	MaxBoneCount    uint32 `yaml:"max_bone_count"`
	MaxTupleCount   uint64 `yaml:"max_tuple_count"`
	VertexSize      uint32 `yaml:"vertex_size"`
	MaxTableSize    uint64 `yaml:"max_table_size"`
	ReduceBoneCount uint32 `yaml:"reduce_bone_count"`
}

var methodsByName = map[string]vbac.Method{
	"none":        vbac.MethodNone,
	"unit_cube":   vbac.MethodUnitCube,
	"po2_aabb":    vbac.MethodPo2AABB,
	"oss_19":      vbac.MethodOSS19,
	"oss_22":      vbac.MethodOSS22,
	"oss_35":      vbac.MethodOSS35,
	"permutation": vbac.MethodPermutation,
}

func main() {
	configPath := flag.String("config", "", "path to the YAML run-parameters file")
	flag.Parse()
	if *configPath == "" {
		log.Fatal("vbac-pack: -config is required")
	}

	if err := run(*configPath); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(configPath string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return errors.Wrapf(err, "loading config %q", configPath)
	}

	method, ok := methodsByName[cfg.Method]
	if !ok {
		return errors.Errorf("unknown method %q", cfg.Method)
	}

	src, err := readAttributes(cfg.Input, cfg.MaxBoneCount)
	if err != nil {
		return errors.Wrapf(err, "reading input %q", cfg.Input)
	}
	vertexCount := len(src.Indices) / int(src.IndexStride)

	params := vbac.CompleteParams(vbac.Params{
		Method:        method,
		MaxBoneCount:  cfg.MaxBoneCount,
		MaxTupleCount: cfg.MaxTupleCount,
		VertexSize:    cfg.VertexSize,
	})

	if cfg.ReduceBoneCount > 0 && cfg.ReduceBoneCount < params.MaxBoneCount {
		reduced := vbac.Attributes{
			Indices:      make([]uint16, vertexCount*int(cfg.ReduceBoneCount)),
			IndexStride:  cfg.ReduceBoneCount,
			Weights:      make([]float32, vertexCount*int(cfg.ReduceBoneCount-1)),
			WeightStride: cfg.ReduceBoneCount - 1,
		}
		if err := vbac.ReduceBoneCount(reduced, src, cfg.ReduceBoneCount, params.MaxBoneCount, false); err != nil {
			return errors.Wrap(err, "reducing bone count")
		}
		src = reduced
		params.MaxBoneCount = cfg.ReduceBoneCount
		params = vbac.CompleteParams(params)
	}

	maxTableSize := cfg.MaxTableSize
	if maxTableSize == 0 {
		maxTableSize = uint64(vertexCount)
	}

	buffers := vbac.CompressedBuffers{
		Table: make([]uint16, maxTableSize*uint64(params.MaxBoneCount)),
	}
	compressErr := vbac.CompressBuffers(&buffers, src, params, maxTableSize)
	if compressErr != nil && !errors.Is(compressErr, vbac.ErrTableOverflow) {
		return errors.Wrap(compressErr, "compressing buffers")
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return errors.Wrapf(err, "creating output %q", cfg.Output)
	}
	defer f.Close()

	// On table overflow only maxTableSize rows were written to the table, so
	// the container records that many; the log below reports the needed size.
	written := buffers
	if written.TableSize > maxTableSize {
		written.TableSize = maxTableSize
	}
	art := container.Artifact{
		Params:      params,
		VertexCount: uint64(vertexCount),
		Buffers:     written,
	}
	if err := container.Write(f, art); err != nil {
		return errors.Wrap(err, "writing container")
	}

	uncompressedBytes := vertexCount * int(params.MaxBoneCount) * (2 + 4)
	compressedBytes := vertexCount*int(params.VertexSize) + int(buffers.TableSize)*int(params.MaxBoneCount)*2
	logger.Info().
		Str("method", params.Method.String()).
		Int("vertex_count", vertexCount).
		Uint64("table_size", buffers.TableSize).
		Int("uncompressed_bytes", uncompressedBytes).
		Int("compressed_bytes", compressedBytes).
		Msg("compression run complete")

	if compressErr != nil {
		log.Printf("warning: %+v", compressErr)
	}
	return nil
}

func loadConfig(path string) (runConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return runConfig{}, errors.WithStack(err)
	}
	defer f.Close()

	var cfg runConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return runConfig{}, errors.WithStack(err)
	}
	return cfg, nil
}

// readAttributes reads a flat sidecar of uint16 bone indices (k per vertex)
// followed by float32 weights (k-1 per vertex, ascending, largest implicit),
// both little-endian, the layout vbac-pack's config points at via Input.
func readAttributes(path string, maxBoneCount uint32) (vbac.Attributes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return vbac.Attributes{}, errors.WithStack(err)
	}

	k := int(maxBoneCount)
	vertexStride := k*2 + (k-1)*4
	if len(data)%vertexStride != 0 {
		return vbac.Attributes{}, errors.Errorf("sidecar %q: size %d not a multiple of vertex stride %d", path, len(data), vertexStride)
	}
	vertexCount := len(data) / vertexStride

	indices := make([]uint16, vertexCount*k)
	weights := make([]float32, vertexCount*(k-1))
	off := 0
	for v := 0; v < vertexCount; v++ {
		for i := 0; i < k; i++ {
			indices[v*k+i] = binary.LittleEndian.Uint16(data[off:])
			off += 2
		}
		for i := 0; i < k-1; i++ {
			bits := binary.LittleEndian.Uint32(data[off:])
			weights[v*(k-1)+i] = math.Float32frombits(bits)
			off += 4
		}
	}

	return vbac.Attributes{
		Indices:      indices,
		IndexStride:  maxBoneCount,
		Weights:      weights,
		WeightStride: maxBoneCount - 1,
	}, nil
}
