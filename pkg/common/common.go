package common

import (
	"os"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var idNode *snowflake.Node

func init() {
	var err error
	idNode, err = snowflake.NewNode(int64(os.Getpid() % 1024)) //nolint:gosec // node id is bounded to [0,1023]
	if err != nil {
		panic(err)
	}
}

// UUIDint64 generates a cluster-unique int64 identifier
func UUIDint64() int64 {
	return idNode.Generate().Int64()
}
