package api

import (
	"dlist/server"
	"dlist/types"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.GET("/lists").
			To(handler.Names).
			Doc("Names of all lists in creation order").
			Metadata(restfulspec.KeyOpenAPITags, []string{"lists"}).
			Writes(NamesResponse{}).
			Returns(200, "OK", NamesResponse{}))

	ws.
		Route(ws.GET("/lists/{name}").
			To(handler.View).
			Doc("Snapshot of one list").
			Metadata(restfulspec.KeyOpenAPITags, []string{"lists"}).
			Param(ws.PathParameter("name", "List name").DataType("string")).
			Writes(server.View{}).
			Returns(200, "OK", server.View{}).
			Returns(404, "List Not Found", ErrorResponse{}))

	ws.
		Route(ws.POST("/lists/{name}/commands").
			To(handler.Apply).
			Doc("Apply a command to a list").
			Metadata(restfulspec.KeyOpenAPITags, []string{"lists"}).
			Param(ws.PathParameter("name", "List name").DataType("string")).
			Reads(types.Command{}).
			Writes(server.Result{}).
			Returns(200, "OK", server.Result{}).
			Returns(400, "Bad Request", ErrorResponse{}).
			Returns(404, "List Not Found", ErrorResponse{}).
			Returns(409, "List Exists", ErrorResponse{}))

	container.Add(ws)

	container.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
	}))
}
