package feeds

import (
	"encoding/json"
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// DecodeFunc turns a raw feed payload into snapshot items. The pipeline
// treats the items as inert payload; only the count matters to scheduling.
type DecodeFunc func(data []byte, format string) ([]json.RawMessage, error)

// DecodeFeed decodes a GTFS-RT feed message, either the default binary
// encoding or the structured-text (JSON) encoding, into one JSON document
// per feed entity.
func DecodeFeed(data []byte, format string) ([]json.RawMessage, error) {
	msg := &gtfsrtpb.FeedMessage{}
	switch format {
	case FormatJSON:
		if err := protojson.Unmarshal(data, msg); err != nil {
			return nil, fmt.Errorf("decode gtfsrt json: %w", err)
		}
	default:
		if err := proto.Unmarshal(data, msg); err != nil {
			return nil, fmt.Errorf("decode gtfsrt protobuf: %w", err)
		}
	}
	items := make([]json.RawMessage, 0, len(msg.Entity))
	for _, e := range msg.Entity {
		b, err := protojson.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encode feed entity: %w", err)
		}
		items = append(items, json.RawMessage(b))
	}
	return items, nil
}
