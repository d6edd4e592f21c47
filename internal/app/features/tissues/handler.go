// internal/app/features/tissues/handler.go
package tissues

import (
	"github.com/microcosm-cc/bluemonday"
	tissuestore "github.com/yvelmence/tissuefinder/internal/app/store/tissues"
	userstore "github.com/yvelmence/tissuefinder/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the tissue catalog: organ entries with descriptions,
// histology notes, and a reference image.
type Handler struct {
	Tissues *tissuestore.Store
	Users   *userstore.Store
	Log     *zap.Logger

	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Tissues: tissuestore.New(db),
		Users:   userstore.New(db),
		Log:     logger,
		ugc:     bluemonday.UGCPolicy(),
		strict:  bluemonday.StrictPolicy(),
	}
}
