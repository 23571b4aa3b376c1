package validators

import "go.mongodb.org/mongo-driver/bson"

var IdentityLinkValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "email", "role", "linked_at"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{8}$",
			},
			"email":     bson.M{"bsonType": "string", "minLength": 1, "maxLength": 180},
			"role":      bson.M{"enum": []string{"CUSTOMER", "TRAINER"}},
			"linked_at": bson.M{"bsonType": "date"},
		},
	},
}

var AttendanceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "email", "role", "timestamp"},
		"properties": bson.M{
			"email":     bson.M{"bsonType": "string", "minLength": 1, "maxLength": 180},
			"role":      bson.M{"enum": []string{"CUSTOMER", "TRAINER"}},
			"timestamp": bson.M{"bsonType": "date"},
		},
	},
}

var RoutineValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "customer_id", "plan", "created_at"},
		"properties": bson.M{
			"customer_id": bson.M{"bsonType": "string", "minLength": 1},
			"plan":        bson.M{"bsonType": "object"},
			"created_at":  bson.M{"bsonType": "date"},
		},
	},
}

var ProgressValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "customer_id", "date", "weight_kg", "body_fat_pct", "muscle_pct"},
		"properties": bson.M{
			"customer_id": bson.M{"bsonType": "string", "minLength": 1},
			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},
			"weight_kg":    bson.M{"bsonType": "double", "minimum": 0, "exclusiveMinimum": true, "maximum": 400},
			"body_fat_pct": bson.M{"bsonType": "double", "minimum": 0, "maximum": 100},
			"muscle_pct":   bson.M{"bsonType": "double", "minimum": 0, "maximum": 100},
			"created_at":   bson.M{"bsonType": "date"},
		},
	},
}
