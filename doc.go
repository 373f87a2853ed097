/*
Package duckdoc turns annotated documentation comments into structured
records and deterministic HTML fragments.

It is organized around a registry of tag handlers. Each tag owns one
annotation pattern (e.g. @cfg, @extends, @deprecated) and participates in the
processing stages it cares about: parsing its annotation occurrences into
fragments, combining repeated fragments into record fields, reading
structural facts out of declaration literals, merging comment intent with
code facts, and rendering its slice of the output page. New tags extend the
system without touching the pipeline.

The main entry point is the Processor, created from a Config. The builtin
tag set covers classes, the four member kinds (cfg, property, method,
event), parameters, return values, versioning and visibility flags;
additional simple tags can be loaded from a YAML catalog via
tags.ParseCustomCatalog.
*/
package duckdoc
