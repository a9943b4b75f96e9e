package mongo

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/relaycrm/crm-api/internal/core/ports"
)

func TestActivityFilter(t *testing.T) {
	tests := []struct {
		name string
		in   ports.ActivityFilter
		want bson.M
	}{
		{"empty", ports.ActivityFilter{}, bson.M{}},
		{
			"entity",
			ports.ActivityFilter{EntityType: "lead", EntityID: "l-1"},
			bson.M{"entity_type": "lead", "entity_id": "l-1"},
		},
		{
			"action only",
			ports.ActivityFilter{Action: "stage_changed"},
			bson.M{"action": "stage_changed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := activityFilter(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("activityFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}
