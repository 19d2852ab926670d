package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modelgate/modelgate/common/config"
	"github.com/modelgate/modelgate/common/helper"
	"github.com/modelgate/modelgate/relay/model"
)

// ListModels announces the single model this gateway fronts.
func ListModels(c *gin.Context) {
	card := model.ModelCard{
		Id:         config.ModelName,
		Object:     "model",
		Created:    helper.GetTimestamp(),
		OwnedBy:    "owner",
		Root:       config.ModelName,
		Permission: []any{},
	}
	c.JSON(http.StatusOK, model.ModelList{
		Object: "list",
		Data:   []model.ModelCard{card},
	})
}
