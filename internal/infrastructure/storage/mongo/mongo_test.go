package mongo

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "medapp." + Collection

	mt.Run("get existing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "@MedicalApp:token"},
			{Key: "value", Value: "jwt"},
		}))

		v, ok, err := NewStore(mt.DB).Get(context.Background(), "@MedicalApp:token")
		if err != nil || !ok || v != "jwt" {
			mt.Fatalf("get = %q, %v, %v", v, ok, err)
		}
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, ok, err := NewStore(mt.DB).Get(context.Background(), "absent")
		if err != nil || ok {
			mt.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
		}
	})

	mt.Run("set upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "k"}}}},
		))

		if err := NewStore(mt.DB).Set(context.Background(), "k", "v"); err != nil {
			mt.Fatalf("set: %v", err)
		}
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := NewStore(mt.DB).Delete(context.Background(), "k"); err != nil {
			mt.Fatalf("delete: %v", err)
		}
	})

	mt.Run("write error surfaces", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 11000, Message: "duplicate key", Name: "DuplicateKey",
		}))

		if err := NewStore(mt.DB).Set(context.Background(), "k", "v"); err == nil {
			mt.Fatal("expected error")
		}
	})
}
