package validators

import "go.mongodb.org/mongo-driver/bson"

func partySchema(extra bson.M) bson.M {
	properties := bson.M{
		"_id": bson.M{
			"bsonType":  "string",
			"minLength": 1,
			"maxLength": 180,
		},
		"name": bson.M{
			"bsonType":  "string",
			"minLength": 1,
			"maxLength": 120,
		},
		"age": bson.M{
			"bsonType": []string{"int", "long"},
			"minimum":  0,
			"maximum":  120,
		},
		"created_at": bson.M{
			"bsonType": "date",
		},
	}
	for k, v := range extra {
		properties[k] = v
	}

	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   []string{"_id", "name", "created_at"},
			"properties": properties,
		},
	}
}

var CustomerValidator = partySchema(nil)

var TrainerValidator = partySchema(bson.M{
	"specialty": bson.M{
		"bsonType":  "string",
		"maxLength": 160,
	},
})

var HistoryValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"customer_id", "trainer_id", "schedule", "note", "recorded_at"},
		"properties": bson.M{
			"customer_id": bson.M{"bsonType": "string", "minLength": 1},
			"trainer_id":  bson.M{"bsonType": "string", "minLength": 1},
			"schedule":    bson.M{"bsonType": "string"},
			"note":        bson.M{"bsonType": "string"},
			"recorded_at": bson.M{"bsonType": "date"},
		},
	},
}
