package handler

import (
	"errors"
	"log"

	"github.com/rehanFauzan/uangbro-api/internal/store"
	"github.com/rehanFauzan/uangbro-api/internal/util"

	"github.com/gin-gonic/gin"
)

// failStore maps store errors onto the wire taxonomy. Backend detail is
// logged, never sent to the client.
func failStore(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		util.Fail(c, util.KindNotFound)
	case errors.Is(err, store.ErrUnauthorized):
		util.Fail(c, util.KindUnauthorized)
	case errors.Is(err, store.ErrUnauthenticated):
		util.Fail(c, util.KindUnauthenticated)
	case errors.Is(err, store.ErrValidation):
		util.Fail(c, util.KindValidation)
	default:
		log.Printf("storage error: %v", err)
		util.Fail(c, util.KindStorage)
	}
}
