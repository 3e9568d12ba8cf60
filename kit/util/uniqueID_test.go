package util

import (
	"testing"

	"github.com/jxskiss/base62"
	"github.com/stretchr/testify/assert"
)

func TestUniqueID(t *testing.T) {
	uniqueIDGenerate, err := GetUniqueIDGenerate()
	assert.Nil(t, err)

	same, err := GetUniqueIDGenerate()
	assert.Nil(t, err)
	assert.Same(t, uniqueIDGenerate, same)

	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := uniqueIDGenerate.Generate().GetInt64()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestSetSnowflakeNodeID(t *testing.T) {
	assert.Error(t, SetSnowflakeNodeID(-1))
	assert.Error(t, SetSnowflakeNodeID(1024))

	uniqueIDGenerateLock.Lock()
	prevGenerate, prevNodeID := singletonUniqueIDGenerate, snowflakeNodeID
	singletonUniqueIDGenerate = nil
	uniqueIDGenerateLock.Unlock()
	defer func() {
		uniqueIDGenerateLock.Lock()
		singletonUniqueIDGenerate, snowflakeNodeID = prevGenerate, prevNodeID
		uniqueIDGenerateLock.Unlock()
	}()

	assert.Nil(t, SetSnowflakeNodeID(7))
	assert.Equal(t, int64(7), GetSnowflakeNodeID())

	// the node is fixed once the first id exists
	_, err := GetUniqueIDGenerate()
	assert.Nil(t, err)
	assert.Nil(t, SetSnowflakeNodeID(GetSnowflakeNodeID()))
	assert.Error(t, SetSnowflakeNodeID(GetSnowflakeNodeID()+1))

	id := GetSnowflakeIDInt64()
	assert.Equal(t, int64(7), (id>>12)&1023)
}

func TestFormatBase62(t *testing.T) {
	for _, id := range []int64{1, 61, 62, 1 << 40} {
		parsed, err := base62.ParseInt([]byte(FormatBase62(id)))
		assert.Nil(t, err)
		assert.Equal(t, id, parsed)
	}
}
