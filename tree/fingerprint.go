package tree

import (
	"encoding/json"
	"strconv"

	"github.com/minio/highwayhash"
)

var key = []byte("gitinsight-tree-fingerprint-key!")

// Hash returns highwayhash-64 of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint returns hex encoded hash of the tree JSON representation; structurally
// identical trees share a fingerprint
func (t *Tree) Fingerprint() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	sum, err := Hash(data)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(sum, 16), nil
}
