package cli

var CloseInto = closeInto
