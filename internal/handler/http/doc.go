// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST surface of the directory server.
//
// Routes are registered on a chi router in [Handler.Init]. Every request
// passes through trace id, access log, metrics, CORS, panic recovery and
// compression middleware before it reaches a handler. Handlers decode JSON
// bodies, call the service layer and translate service errors into
// {"error": "..."} responses via the error mapper.
package http
