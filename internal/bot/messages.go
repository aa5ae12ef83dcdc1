package bot

// Canned pt-BR responses. Replies support simple **bold** inline markup.
const (
	msgOffensive = "Vamos manter a conversa respeitosa, combinado? 🙏 Posso ajudar com cardápio, pedidos ou horários."

	msgDefaultRedirect = "Posso ajudar com cardápio, pedidos ou horários. É só me dizer! 😊"

	msgEmptyCart = "Seu carrinho ainda está vazio. Que tal dar uma olhada no **cardápio**? 🍕"

	msgDishNotFound = "Não encontrei esse item no cardápio. 😕 Dá uma olhada nas opções!"

	msgDeliveryPickup = "Seu pedido será para **entrega** ou **retirada**?"

	msgAskName = "Perfeito! Para começar, qual é o seu **nome**?"

	msgAskPhone = "Agora me informe seu **telefone** com DDD, por favor. 📱"

	msgPhoneInvalid = "Esse telefone parece incompleto. 😕 Me informe o número com DDD (pelo menos 10 dígitos)."

	msgAskAddress = "Qual o endereço de entrega? (rua, número e complemento)"

	msgAskNeighborhood = "E qual o **bairro**?"

	msgAskPayment = "Como você prefere pagar?"

	msgAskChangeFmt = "O total do pedido é **%s**. Troco para quanto?"

	msgChangeBelowTotalFmt = "O valor precisa ser igual ou maior que o total de **%s**. Troco para quanto?"

	msgChangeUnparseable = "Não entendi o valor. 😕 Me diga para quanto precisa de troco, ou responda \"sem troco\"."

	msgOrderCancelled = "Tudo bem, pedido cancelado. Quando quiser pedir de novo, é só chamar! 👋"

	msgSubmitSuccessFmt = "Pedido confirmado! 🎉 Seu código é **%s**. Obrigado pela preferência!"

	msgSubmitFailureFmt = "Ops, não consegui enviar seu pedido agora: %s\nResponda **sim** para tentar novamente."

	msgTrackOrder = "Para acompanhar seu pedido, me informe o código que você recebeu na confirmação (ex: PED-123)."
)
