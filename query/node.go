package query

import (
	"encoding/base64"
	"strings"

	"github.com/goliatone/go-catalog/failure"
	"github.com/google/uuid"
)

// Node kinds.
const (
	KindCurrency = "Currency"
	KindQRCode   = "QRCode"
	KindProduct  = "Product"
)

// NodeID returns the opaque global identifier of a record.
func NodeID(kind string, id uuid.UUID) string {
	return base64.StdEncoding.EncodeToString([]byte(kind + ":" + id.String()))
}

// ParseNodeID splits a global identifier into its kind and id.
func ParseNodeID(nodeID string) (string, uuid.UUID, error) {
	raw, err := base64.StdEncoding.DecodeString(nodeID)
	if err != nil {
		return "", uuid.Nil, invalidNodeID()
	}

	kind, rawID, ok := strings.Cut(string(raw), ":")
	if !ok || kind == "" {
		return "", uuid.Nil, invalidNodeID()
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return "", uuid.Nil, invalidNodeID()
	}
	return kind, id, nil
}

func invalidNodeID() error {
	return failure.Validation(map[string]string{"id": "invalid node id"})
}
