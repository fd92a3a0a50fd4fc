package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterListSQL(t *testing.T) {
	query, args, err := Filter{Action: ActionSalaryCredited, EntityID: " emp-1 "}.ListSQL(false, 20, 40)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, actor_user_id::text, action, entity_type, entity_id, request_id, ip, created_at FROM audit_events WHERE (action = $1 AND entity_id = $2) ORDER BY created_at DESC, id DESC LIMIT 20 OFFSET 40",
		query)
	assert.Equal(t, []any{ActionSalaryCredited, "emp-1"}, args)
}

func TestFilterListSQLWithDetails(t *testing.T) {
	query, args, err := Filter{}.ListSQL(true, 10, 0)
	require.NoError(t, err)
	assert.Contains(t, query, "created_at, details_json FROM audit_events")
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestFilterCountSQL(t *testing.T) {
	query, args, err := Filter{EntityType: EntityDeduction, ActorUser: "u-1"}.CountSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(1) FROM audit_events WHERE (entity_type = $1 AND actor_user_id::text = $2)", query)
	assert.Equal(t, []any{EntityDeduction, "u-1"}, args)
}
