package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// epoch is 2026-01-01T00:00:00Z in milliseconds.
const epoch int64 = 1767225600000

var setEpoch sync.Once

// Snowflake generates time-ordered numeric IDs. Ingestion uses them as
// attempt IDs so log records of one dataset attempt can be grouped.
type Snowflake struct {
	node *snowflake.Node
}

func generateRandomNodeID() (int64, error) {
	var nodeID int64
	err := binary.Read(rand.Reader, binary.BigEndian, &nodeID)
	if err != nil {
		return 0, err
	}

	return nodeID & (1<<snowflake.NodeBits - 1), nil
}

// NewSnowflake constructs a Snowflake generator. A negative nodeID picks a
// random node.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 {
		var err error
		if nodeID, err = generateRandomNodeID(); err != nil {
			return nil, err
		}
	}

	setEpoch.Do(func() { snowflake.Epoch = epoch })

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

// Strings adapts the generator to StringID using base-10 encoding.
func (s *Snowflake) Strings() StringID {
	return snowflakeString{s}
}

type snowflakeString struct{ s *Snowflake }

func (g snowflakeString) Generate() string {
	return strconv.FormatInt(g.s.Generate(), 10)
}
