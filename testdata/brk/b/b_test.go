package b

var broken int = "not an int"
