// Package nvapi is a minimal client for the public NVIDIA driver download
// services: the GPU model catalog (XML lookup values), the driver lookup
// endpoint whose body redirects to a numeric download result, and the JSON
// download-details service that yields the direct package URL.
//
// All endpoints are overridable, which the tests use to point the client at
// httptest fakes.
package nvapi
