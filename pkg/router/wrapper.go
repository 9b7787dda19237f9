package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/fairdraw/backend/pkg/errorx"
)

func wrapHandler[Request, Response any](
	router *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeResponse(w, newErrorResponse(errorx.New(errorx.BadRequest, "Unsupported method %s", r.Method)))
			return
		}

		ctx := router.ctx
		var err error
		for _, middleware := range router.befores {
			if ctx, err = middleware(ctx, r); err != nil {
				writeResponse(w, newErrorResponse(err))
				return
			}
		}

		var req Request
		switch method {
		case http.MethodGet:
			err = bindQuery(r, &req)
		case http.MethodPost:
			err = bindBody(r, &req)
		}

		if err != nil {
			writeResponse(w, newErrorResponse(errorx.New(errorx.BadRequest, "Cannot bind the request: %v", err)))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			writeResponse(w, newErrorResponse(err))
			return
		}

		writeResponse(w, newResponse(resp))
	}
}

func bindBody(r *http.Request, req any) error {
	err := json.NewDecoder(r.Body).Decode(req)
	if errors.Is(err, io.EOF) {
		// An empty body binds the zero request.
		return nil
	}

	return err
}

// bindQuery fills the request from url parameters named by the json tags.
func bindQuery(r *http.Request, req any) error {
	v := reflect.ValueOf(req).Elem()
	for i := 0; i < v.NumField(); i++ {
		name, _, _ := strings.Cut(v.Type().Field(i).Tag.Get("json"), ",")
		value := r.URL.Query().Get(name)
		if value == "" {
			continue
		}

		switch field := v.Field(i); field.Kind() {
		case reflect.String:
			field.SetString(value)

		case reflect.Int, reflect.Int64:
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}

			field.SetInt(parsed)

		case reflect.Bool:
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}

			field.SetBool(parsed)
		}
	}

	return nil
}
