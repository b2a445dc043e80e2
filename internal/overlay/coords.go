package overlay

import (
	"fmt"
	"reflect"
)

// nestingError points at the element of a coordinate tree that does not
// have the expected shape.
type nestingError struct {
	path string
	want string
}

func (e *nestingError) Error() string {
	return "coordinates" + e.path + ": expected " + e.want
}

func (e *nestingError) at(i int) *nestingError {
	e.path = fmt.Sprintf("[%d]", i) + e.path
	return e
}

// elems returns the elements of any slice or array, so typed coordinate
// trees such as [][]float64 read the same as decoded JSON.
func elems(v any) ([]any, bool) {
	if a, ok := v.([]any); ok {
		return a, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// parsePosition reads a [lon, lat(, alt...)] array. Extra ordinates are
// ignored.
func parsePosition(v any) (LatLng, *nestingError) {
	a, ok := elems(v)
	if !ok || len(a) < 2 {
		return LatLng{}, &nestingError{want: "position"}
	}
	lon, ok1 := a[0].(float64)
	lat, ok2 := a[1].(float64)
	if !ok1 || !ok2 {
		return LatLng{}, &nestingError{want: "position"}
	}
	return FromPosition([2]float64{lon, lat}), nil
}

func parsePath(v any) ([]LatLng, *nestingError) {
	arr, ok := elems(v)
	if !ok {
		return nil, &nestingError{want: "array of positions"}
	}
	out := make([]LatLng, 0, len(arr))
	for i, el := range arr {
		p, err := parsePosition(el)
		if err != nil {
			return nil, err.at(i)
		}
		out = append(out, p)
	}
	return out, nil
}

func parsePaths(v any) ([][]LatLng, *nestingError) {
	arr, ok := elems(v)
	if !ok {
		return nil, &nestingError{want: "array of rings"}
	}
	out := make([][]LatLng, 0, len(arr))
	for i, el := range arr {
		ls, err := parsePath(el)
		if err != nil {
			return nil, err.at(i)
		}
		out = append(out, ls)
	}
	return out, nil
}

func parsePolygons(v any) ([][][]LatLng, *nestingError) {
	arr, ok := elems(v)
	if !ok {
		return nil, &nestingError{want: "array of polygons"}
	}
	out := make([][][]LatLng, 0, len(arr))
	for i, el := range arr {
		rings, err := parsePaths(el)
		if err != nil {
			return nil, err.at(i)
		}
		out = append(out, rings)
	}
	return out, nil
}
