// Package specfile loads declaration documents: YAML (or JSON) files that
// declare template styles, classes with their repr declarations, and named
// instances of those classes.
//
//	styles:
//	  brace: "{{ type }}{ {% for a in attributes %}{{ a.text }} {% endfor %}}"
//	classes:
//	  - name: AB
//	    slots: [a, b]
//	    repr: [a, b]
//	  - name: CD
//	    bases: [AB]
//	    repr: [c, ..., {key: extra, value: 1}, [7]]
//	    style: angle
//	instances:
//	  - name: sample
//	    class: CD
//	    attributes: {a: 1, b: 2, c: 3}
//
// A class without a repr key carries no declaration; a null repr or "..."
// shows every visible attribute. Classes and instances must be declared
// before they are referenced, across files in lexical order when loading a
// directory.
package specfile
