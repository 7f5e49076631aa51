package app

import (
	"github.com/vk/chathostgo/internal/registry"
	"github.com/vk/chathostgo/modules/chatlog"
	"github.com/vk/chathostgo/modules/echo"
	"github.com/vk/chathostgo/modules/socketio_chat"
	"github.com/vk/chathostgo/modules/webhook"
)

// coreModules is the definitive list of all extension modules that are
// compiled into the chathostgo binary.
var coreModules = []registry.Module{
	&socketio_chat.Module{},
	&echo.Module{},
	&chatlog.Module{},
	&webhook.Module{},
}
