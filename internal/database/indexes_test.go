package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIndexPlan_ActiveTokenIsUniqueOnlyAmongActiveComandas(t *testing.T) {
	for _, plan := range indexPlan() {
		if plan.collection != ColComandas {
			continue
		}
		for _, model := range plan.models {
			if model.Options == nil || model.Options.Name == nil || *model.Options.Name != "active_token_unique" {
				continue
			}
			require.NotNil(t, model.Options.Unique)
			require.True(t, *model.Options.Unique)
			require.Equal(t, bson.M{"isActive": true}, model.Options.PartialFilterExpression)
			return
		}
	}
	t.Fatal("active_token_unique index is missing")
}

func TestIndexPlan_NamesAreUniquePerCollection(t *testing.T) {
	seen := map[string]bool{}
	for _, plan := range indexPlan() {
		require.NotEmpty(t, plan.models, plan.collection)
		for _, model := range plan.models {
			if model.Options == nil || model.Options.Name == nil {
				continue
			}
			key := plan.collection + "." + *model.Options.Name
			require.False(t, seen[key], key)
			seen[key] = true
		}
	}
}

func TestIDFilterMatchesStringAndObjectIDForms(t *testing.T) {
	filter := idFilter("65f2a1b2c3d4e5f601234567")
	in := filter["_id"].(bson.M)["$in"].(bson.A)
	require.Len(t, in, 2)
	require.Equal(t, "65f2a1b2c3d4e5f601234567", in[0])

	require.Equal(t, bson.M{"_id": "abc123"}, idFilter("abc123"))
}
