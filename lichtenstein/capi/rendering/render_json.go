// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendering

import (
	"bytes"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// RenderJSON marshals v with HTML escaping, sets the JSON content type and
// writes status. It returns an error only if nothing was written yet.
func RenderJSON(status int, w http.ResponseWriter, r *http.Request, v interface{}) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.WithError(err).WithField("path", r.URL.Path).Warn("Error while writing response body")
	}

	return nil
}
