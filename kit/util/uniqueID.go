package util

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/jxskiss/base62"
	"github.com/pkg/errors"
)

type UniqueIDGenerate struct {
	snowflakeNode *snowflake.Node
}

var (
	uniqueIDGenerateLock      sync.Mutex
	singletonUniqueIDGenerate *UniqueIDGenerate
	snowflakeNodeID           int64 = 1
)

func GetUniqueIDGenerate() (*UniqueIDGenerate, error) {
	uniqueIDGenerateLock.Lock()
	defer uniqueIDGenerateLock.Unlock()

	if singletonUniqueIDGenerate != nil {
		return singletonUniqueIDGenerate, nil
	}
	snowflakeNode, err := snowflake.NewNode(snowflakeNodeID)
	if err != nil {
		return nil, errors.Wrap(err, "create snowflake failed")
	}
	singletonUniqueIDGenerate = &UniqueIDGenerate{
		snowflakeNode: snowflakeNode,
	}
	return singletonUniqueIDGenerate, nil
}

// SetSnowflakeNodeID sets the node of this process. Every replica needs its
// own node id, and it can only be set before the first id is generated.
func SetSnowflakeNodeID(nodeID int64) error {
	uniqueIDGenerateLock.Lock()
	defer uniqueIDGenerateLock.Unlock()

	if nodeMax := int64(-1 ^ (-1 << snowflake.NodeBits)); nodeID < 0 || nodeID > nodeMax {
		return errors.Errorf("snowflake node id must be between 0 and %d, got %d", nodeMax, nodeID)
	}
	if singletonUniqueIDGenerate != nil {
		if singletonUniqueIDGenerate.nodeID() == nodeID {
			return nil
		}
		return errors.New("snowflake node already started, set node id before generating ids")
	}
	snowflakeNodeID = nodeID
	return nil
}

func GetSnowflakeNodeID() int64 {
	uniqueIDGenerateLock.Lock()
	defer uniqueIDGenerateLock.Unlock()

	return snowflakeNodeID
}

func (u UniqueIDGenerate) nodeID() int64 {
	return u.snowflakeNode.Generate().Node()
}

func (u UniqueIDGenerate) Generate() *UniqueID {
	return &UniqueID{
		snowflakeID: u.snowflakeNode.Generate(),
	}
}

type UniqueID struct {
	snowflakeID snowflake.ID
}

func (u UniqueID) GetInt64() int64 {
	return u.snowflakeID.Int64()
}

func GetSnowflakeIDInt64() int64 {
	uniqueIDGenerate, err := GetUniqueIDGenerate()
	if err != nil {
		panic(err)
	}
	return uniqueIDGenerate.Generate().GetInt64()
}

func FormatBase62(id int64) string {
	return string(base62.FormatInt(id))
}
