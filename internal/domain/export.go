package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanExport stores metadata about a rendered markdown export of a plan.
// The document itself resides in S3 under S3ObjectKey.
type PlanExport struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID      primitive.ObjectID `bson:"planId" json:"planId"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"` // internal use only
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"` // rendered document size in bytes
	ExportedAt  time.Time          `bson:"exportedAt" json:"exportedAt"`
}
