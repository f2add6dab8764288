// vbac-digest reads a vbac container artifact and prints a digest of its
// compressed-vertex bytes, so two runs of vbac-pack over the same input can
// be compared for determinism without diffing raw bytes by hand.
package main

import (
	"encoding/hex"
	"flag"
	"log"
	"os"

	"github.com/gtank/blake2/blake2b"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/vtxcompress/vbac/internal/container"
)

func main() {
	inputPath := flag.String("input", "", "path to a vbac container file")
	flag.Parse()
	if *inputPath == "" {
		log.Fatal("vbac-digest: -input is required")
	}

	if err := run(*inputPath); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(inputPath string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return errors.Wrapf(err, "opening %q", inputPath)
	}
	defer f.Close()

	art, err := container.Read(f)
	if err != nil {
		return errors.Wrap(err, "reading container")
	}

	h, err := blake2b.NewDigest(nil, nil, nil, 32)
	if err != nil {
		return errors.Wrap(err, "constructing hash")
	}
	if _, err := h.Write(art.Buffers.Compressed); err != nil {
		return errors.Wrap(err, "hashing compressed vertices")
	}
	sum := h.Sum(nil)

	log.Printf("method=%s vertex_count=%d table_size=%d", art.Params.Method, art.VertexCount, art.Buffers.TableSize)
	log.Printf("digest hex=%s", hex.EncodeToString(sum))
	log.Printf("digest base58=%s", base58.Encode(sum))
	return nil
}
