// Package transport is the authenticated request pipeline.
//
// Every outbound request is built here: a bearer credential is
// attached when the token store holds one, responses are funneled
// through unauthorized detection, and error payloads are normalized
// to a uniform shape. A distinguished unauthorized error code is fatal
// to the session: the pipeline forces a full navigation to the
// unauthenticated entry point and the caller receives nothing it can
// act on further.
package transport
