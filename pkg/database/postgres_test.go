package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestConnectDB_EmptyDSN(t *testing.T) {
	db, err := ConnectDB("", zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, db)
}
